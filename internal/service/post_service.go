package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"quill/internal/auth"
	errs "quill/internal/errors"
	"quill/internal/model"
	"quill/internal/policy"
	"quill/internal/repository"
)

const maxTitleLength = 150

// CreatePostInput carries the writable fields for a new post.
type CreatePostInput struct {
	Title     string
	Content   string
	Published bool
}

// UpdatePostInput carries the writable fields for an update. Nil pointers
// leave the corresponding field unchanged; Title is always replaced.
type UpdatePostInput struct {
	Title     string
	Content   *string
	Published *bool
}

// PostService orchestrates the post lifecycle: input validation, the
// authorization policy, and the store.
type PostService interface {
	Create(ctx context.Context, ident *auth.Identity, in CreatePostInput) (*model.Post, error)
	Get(ctx context.Context, ident *auth.Identity, id uuid.UUID) (*model.Post, error)
	ListPublished(ctx context.Context) ([]model.Post, error)
	Update(ctx context.Context, ident *auth.Identity, id uuid.UUID, in UpdatePostInput) (*model.Post, error)
	Delete(ctx context.Context, ident *auth.Identity, id uuid.UUID) error
}

type postService struct {
	postRepo repository.PostRepository
}

// NewPostService creates a new post service.
func NewPostService(postRepo repository.PostRepository) PostService {
	return &postService{postRepo: postRepo}
}

// validateTitle enforces the title invariant before anything is persisted:
// non-empty and at most 150 characters.
func validateTitle(title string) error {
	if title == "" {
		return errs.ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return errs.ErrTitleTooLong
	}
	return nil
}

// Create persists a new post owned by ident. Published defaults to false,
// so new posts are drafts unless explicitly published.
func (s *postService) Create(ctx context.Context, ident *auth.Identity, in CreatePostInput) (*model.Post, error) {
	if ident == nil {
		return nil, errs.ErrUnauthenticated
	}
	if err := validateTitle(in.Title); err != nil {
		return nil, err
	}

	post := &model.Post{
		Title:     in.Title,
		Content:   in.Content,
		Published: in.Published,
		AuthorID:  ident.ID,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// Get fetches a single post, applying read visibility. A draft hidden from
// a non-owner reports the same not-found as a missing row, so private
// drafts do not leak their existence.
func (s *postService) Get(ctx context.Context, ident *auth.Identity, id uuid.UUID) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}

	if !policy.CanRead(ident, post) {
		return nil, errs.ErrPostNotFound
	}
	return post, nil
}

// ListPublished returns the public feed: published posts only, newest first.
func (s *postService) ListPublished(ctx context.Context) ([]model.Post, error) {
	posts, err := s.postRepo.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// Update mutates title/content/published on an owned post. ID, AuthorID and
// CreatedAt are immutable. Concurrent updates race at last-write-wins.
func (s *postService) Update(ctx context.Context, ident *auth.Identity, id uuid.UUID, in UpdatePostInput) (*model.Post, error) {
	if ident == nil {
		return nil, errs.ErrUnauthenticated
	}

	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}

	if !policy.CanWrite(ident, post) {
		return nil, errs.ErrNotPostAuthor
	}

	if err := validateTitle(in.Title); err != nil {
		return nil, err
	}

	post.Title = in.Title
	if in.Content != nil {
		post.Content = *in.Content
	}
	if in.Published != nil {
		post.Published = *in.Published
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

// Delete removes an owned post. The removal is terminal: a second delete of
// the same id reports not found.
func (s *postService) Delete(ctx context.Context, ident *auth.Identity, id uuid.UUID) error {
	if ident == nil {
		return errs.ErrUnauthenticated
	}

	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.ErrPostNotFound
		}
		return fmt.Errorf("find post: %w", err)
	}

	if !policy.CanWrite(ident, post) {
		return errs.ErrNotPostAuthor
	}

	if err := s.postRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.ErrPostNotFound
		}
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}
