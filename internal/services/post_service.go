package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jobive/backend/internal/linkpreview"
	"github.com/jobive/backend/internal/models"
	"github.com/jobive/backend/internal/repositories"
	"go.uber.org/zap"
)

type PostService struct {
	posts    *repositories.PostRepo
	previews *linkpreview.Fetcher
	log      *zap.Logger
}

func NewPostService(posts *repositories.PostRepo, previews *linkpreview.Fetcher, log *zap.Logger) *PostService {
	return &PostService{posts: posts, previews: previews, log: log}
}

func (s *PostService) Create(ctx context.Context, authorID uuid.UUID, p *models.Post) error {
	if p.Content == "" {
		return fmt.Errorf("%w: content required", ErrValidation)
	}
	p.AuthorID = authorID

	// Preview failures never block the post.
	if url := linkpreview.FirstURL(p.Content); url != "" {
		preview, err := s.previews.Fetch(ctx, url)
		if err != nil {
			s.log.Debug("link preview fetch failed", zap.String("url", url), zap.Error(err))
		} else {
			p.Preview = preview
		}
	}

	return s.posts.Create(ctx, p)
}

func (s *PostService) Get(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: post", ErrNotFound)
	}
	return p, nil
}

func (s *PostService) List(ctx context.Context, limit, offset int) ([]models.Post, error) {
	return s.posts.List(ctx, limit, offset)
}

func (s *PostService) ListByAuthor(ctx context.Context, authorID uuid.UUID, limit, offset int) ([]models.Post, error) {
	return s.posts.ListByAuthor(ctx, authorID, limit, offset)
}

func (s *PostService) Update(ctx context.Context, postID, actorID uuid.UUID, updated *models.Post) (*models.Post, error) {
	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("%w: post", ErrNotFound)
	}
	if p.AuthorID != actorID {
		return nil, fmt.Errorf("%w: only the author can edit a post", ErrUnauthorized)
	}
	p.Content = updated.Content
	p.Tags = updated.Tags
	p.ImageURLs = updated.ImageURLs

	if url := linkpreview.FirstURL(p.Content); url != "" {
		if preview, err := s.previews.Fetch(ctx, url); err == nil {
			p.Preview = preview
		}
	} else {
		p.Preview = nil
	}

	if err := s.posts.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostService) Delete(ctx context.Context, postID, actorID uuid.UUID, role string) error {
	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("%w: post", ErrNotFound)
	}
	if p.AuthorID != actorID && role != models.RoleAdmin {
		return fmt.Errorf("%w: only the author can delete a post", ErrUnauthorized)
	}
	return s.posts.Delete(ctx, postID)
}

// ToggleLike reports whether the post is liked after the call.
func (s *PostService) ToggleLike(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return false, fmt.Errorf("%w: post", ErrNotFound)
	}
	return s.posts.ToggleLike(ctx, postID, userID)
}

func (s *PostService) AddComment(ctx context.Context, postID, userID uuid.UUID, text string) (*models.PostComment, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: comment text required", ErrValidation)
	}
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, fmt.Errorf("%w: post", ErrNotFound)
	}
	c := &models.PostComment{PostID: postID, UserID: userID, Text: text}
	if err := s.posts.AddComment(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *PostService) DeleteComment(ctx context.Context, commentID, actorID uuid.UUID, role string) error {
	c, err := s.posts.GetComment(ctx, commentID)
	if err != nil {
		return fmt.Errorf("%w: comment", ErrNotFound)
	}
	if c.UserID != actorID && role != models.RoleAdmin {
		return fmt.Errorf("%w: only the comment's author can delete it", ErrUnauthorized)
	}
	return s.posts.DeleteComment(ctx, commentID)
}

func (s *PostService) ListComments(ctx context.Context, postID uuid.UUID) ([]models.PostComment, error) {
	return s.posts.ListComments(ctx, postID)
}
