package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"quill/internal/auth"
	errs "quill/internal/errors"
	"quill/internal/model"
	"quill/internal/service"
)

// MockPostService is a mock implementation of service.PostService.
type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) Create(ctx context.Context, ident *auth.Identity, in service.CreatePostInput) (*model.Post, error) {
	args := m.Called(ctx, ident, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostService) Get(ctx context.Context, ident *auth.Identity, id uuid.UUID) (*model.Post, error) {
	args := m.Called(ctx, ident, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostService) ListPublished(ctx context.Context) ([]model.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *MockPostService) Update(ctx context.Context, ident *auth.Identity, id uuid.UUID, in service.UpdatePostInput) (*model.Post, error) {
	args := m.Called(ctx, ident, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostService) Delete(ctx context.Context, ident *auth.Identity, id uuid.UUID) error {
	args := m.Called(ctx, ident, id)
	return args.Error(0)
}

// withIdentity simulates what the JWT middleware puts into context for an
// authenticated request.
func withIdentity(c echo.Context, userID uuid.UUID) {
	c.Set("user", &jwt.Token{
		Claims: &auth.Claims{UserID: userID.String()},
		Valid:  true,
	})
}

func TestPostHandler_Create(t *testing.T) {
	userID := uuid.New()

	t.Run("created", func(t *testing.T) {
		mockSvc := new(MockPostService)
		mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(ident *auth.Identity) bool {
			return ident != nil && ident.ID == userID
		}), service.CreatePostInput{Title: "T", Content: "C"}).
			Return(&model.Post{ID: uuid.New(), Title: "T", Content: "C", AuthorID: userID}, nil)

		e := newTestEcho()
		req := httptest.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(`{"title":"T","content":"C"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		withIdentity(c, userID)

		h := NewPostHandler(mockSvc)
		require.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("anonymous 401", func(t *testing.T) {
		mockSvc := new(MockPostService)
		mockSvc.On("Create", mock.Anything, (*auth.Identity)(nil), mock.Anything).
			Return(nil, errs.ErrUnauthenticated)

		e := newTestEcho()
		req := httptest.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(`{"title":"T"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		h := NewPostHandler(mockSvc)
		err := h.Create(c)
		require.Error(t, err)
		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})

	t.Run("invalid title 400", func(t *testing.T) {
		mockSvc := new(MockPostService)
		mockSvc.On("Create", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errs.ErrTitleTooLong)

		e := newTestEcho()
		req := httptest.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(`{"title":"way too long"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		withIdentity(c, userID)

		h := NewPostHandler(mockSvc)
		err := h.Create(c)
		require.Error(t, err)
		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})
}

func TestPostHandler_Get(t *testing.T) {
	postID := uuid.New()

	newGetContext := func(e *echo.Echo, id string) (echo.Context, *httptest.ResponseRecorder) {
		req := httptest.NewRequest(http.MethodGet, "/api/posts/"+id, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/api/posts/:id")
		c.SetParamNames("id")
		c.SetParamValues(id)
		return c, rec
	}

	t.Run("found", func(t *testing.T) {
		mockSvc := new(MockPostService)
		mockSvc.On("Get", mock.Anything, (*auth.Identity)(nil), postID).
			Return(&model.Post{ID: postID, Title: "T", Published: true}, nil)

		c, rec := newGetContext(newTestEcho(), postID.String())
		h := NewPostHandler(mockSvc)
		require.NoError(t, h.Get(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var post model.Post
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &post))
		assert.Equal(t, postID, post.ID)
	})

	t.Run("hidden or missing is 404", func(t *testing.T) {
		mockSvc := new(MockPostService)
		mockSvc.On("Get", mock.Anything, (*auth.Identity)(nil), postID).
			Return(nil, errs.ErrPostNotFound)

		c, _ := newGetContext(newTestEcho(), postID.String())
		h := NewPostHandler(mockSvc)
		err := h.Get(c)
		require.Error(t, err)
		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, httpErr.Code)
	})

	t.Run("malformed id is 400", func(t *testing.T) {
		c, _ := newGetContext(newTestEcho(), "not-a-uuid")
		h := NewPostHandler(new(MockPostService))
		err := h.Get(c)
		require.Error(t, err)
		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})
}

func TestPostHandler_Update(t *testing.T) {
	userID := uuid.New()
	postID := uuid.New()

	newUpdateContext := func(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
		req := httptest.NewRequest(http.MethodPut, "/api/posts/"+postID.String(), strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/api/posts/:id")
		c.SetParamNames("id")
		c.SetParamValues(postID.String())
		withIdentity(c, userID)
		return c, rec
	}

	t.Run("updated", func(t *testing.T) {
		mockSvc := new(MockPostService)
		mockSvc.On("Update", mock.Anything, mock.Anything, postID, mock.Anything).
			Return(&model.Post{ID: postID, Title: "New", AuthorID: userID}, nil)

		c, rec := newUpdateContext(newTestEcho(), `{"title":"New","published":true}`)
		h := NewPostHandler(mockSvc)
		require.NoError(t, h.Update(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("not the author is 403", func(t *testing.T) {
		mockSvc := new(MockPostService)
		mockSvc.On("Update", mock.Anything, mock.Anything, postID, mock.Anything).
			Return(nil, errs.ErrNotPostAuthor)

		c, _ := newUpdateContext(newTestEcho(), `{"title":"New"}`)
		h := NewPostHandler(mockSvc)
		err := h.Update(c)
		require.Error(t, err)
		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusForbidden, httpErr.Code)
	})
}

func TestPostHandler_Delete(t *testing.T) {
	userID := uuid.New()
	postID := uuid.New()

	newDeleteContext := func(e *echo.Echo) (echo.Context, *httptest.ResponseRecorder) {
		req := httptest.NewRequest(http.MethodDelete, "/api/posts/"+postID.String(), nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/api/posts/:id")
		c.SetParamNames("id")
		c.SetParamValues(postID.String())
		withIdentity(c, userID)
		return c, rec
	}

	t.Run("first delete succeeds, second is 404", func(t *testing.T) {
		mockSvc := new(MockPostService)
		mockSvc.On("Delete", mock.Anything, mock.Anything, postID).Return(nil).Once()
		mockSvc.On("Delete", mock.Anything, mock.Anything, postID).Return(errs.ErrPostNotFound).Once()

		h := NewPostHandler(mockSvc)

		c, rec := newDeleteContext(newTestEcho())
		require.NoError(t, h.Delete(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		c, _ = newDeleteContext(newTestEcho())
		err := h.Delete(c)
		require.Error(t, err)
		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, httpErr.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not the author is 403", func(t *testing.T) {
		mockSvc := new(MockPostService)
		mockSvc.On("Delete", mock.Anything, mock.Anything, postID).Return(errs.ErrNotPostAuthor)

		c, _ := newDeleteContext(newTestEcho())
		h := NewPostHandler(mockSvc)
		err := h.Delete(c)
		require.Error(t, err)
		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusForbidden, httpErr.Code)
	})
}

func TestPostHandler_List(t *testing.T) {
	published := []model.Post{
		{ID: uuid.New(), Title: "Second", Published: true},
		{ID: uuid.New(), Title: "First", Published: true},
	}

	mockSvc := new(MockPostService)
	mockSvc.On("ListPublished", mock.Anything).Return(published, nil)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewPostHandler(mockSvc)
	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var posts []model.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &posts))
	require.Len(t, posts, 2)
	assert.Equal(t, "Second", posts[0].Title)
}
