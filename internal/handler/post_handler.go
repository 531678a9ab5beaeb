package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	errs "quill/internal/errors"
	"quill/internal/service"
)

// PostHandler handles the post lifecycle endpoints.
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// CreatePostRequest represents a post creation request.
type CreatePostRequest struct {
	Title     string `json:"title" validate:"required"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
}

// UpdatePostRequest represents a post update request. Omitted content or
// published leave the stored value unchanged.
type UpdatePostRequest struct {
	Title     string  `json:"title" validate:"required"`
	Content   *string `json:"content"`
	Published *bool   `json:"published"`
}

// postID extracts and parses the :id path parameter.
func postID(c echo.Context) (uuid.UUID, *echo.HTTPError) {
	raw := c.Param("id")
	if raw == "" {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, errs.ErrorResponse{
			Error: "missing post id",
			Code:  "MISSING_POST_ID",
		})
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, errs.ErrorResponse{
			Error: "invalid post id",
			Code:  "INVALID_POST_ID",
		})
	}
	return id, nil
}

// Create godoc
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body CreatePostRequest true "Post data"
// @Success 201 {object} model.Post
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	var req CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	post, err := h.postService.Create(c.Request().Context(), currentIdentity(c), service.CreatePostInput{
		Title:     req.Title,
		Content:   req.Content,
		Published: req.Published,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, post)
}

// List godoc
// @Summary List published posts, newest first
// @Tags posts
// @Produce json
// @Success 200 {array} model.Post
// @Failure 500 {object} errors.ErrorResponse
// @Router /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.postService.ListPublished(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// Get godoc
// @Summary Get a single post
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} model.Post
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	id, httpErr := postID(c)
	if httpErr != nil {
		return httpErr
	}

	post, err := h.postService.Get(c.Request().Context(), currentIdentity(c), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// Update godoc
// @Summary Update an owned post
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param request body UpdatePostRequest true "Post data"
// @Success 200 {object} model.Post
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	id, httpErr := postID(c)
	if httpErr != nil {
		return httpErr
	}

	var req UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	post, err := h.postService.Update(c.Request().Context(), currentIdentity(c), id, service.UpdatePostInput{
		Title:     req.Title,
		Content:   req.Content,
		Published: req.Published,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// Delete godoc
// @Summary Delete an owned post
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	id, httpErr := postID(c)
	if httpErr != nil {
		return httpErr
	}

	if err := h.postService.Delete(c.Request().Context(), currentIdentity(c), id); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "post deleted successfully",
	})
}
