package post

import (
	"log/slog"
	"time"

	"github.com/bloghub/blog-management/internal"
)

// Service handles post business logic
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreatePost creates a new post owned by the authenticated user
func (s *Service) CreatePost(authorID int64, dto CreatePostDTO) (*Post, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("post validation failed", "error", err, "author_id", authorID)
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	now := time.Now()
	post := &Post{
		AuthorID:  authorID,
		Title:     dto.Title,
		Body:      dto.Body,
		Published: dto.Published,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(post); err != nil {
		s.logger.Error("failed to create post", "error", err, "author_id", authorID)
		return nil, err
	}

	s.logger.Info("post created", "post_id", post.ID, "author_id", authorID)
	return post, nil
}

// GetPostByID retrieves a single post
func (s *Service) GetPostByID(id int64) (*Post, error) {
	post, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get post", "error", err, "post_id", id)
		return nil, internal.ErrPostNotFound
	}
	return post, nil
}

// GetAllPosts retrieves posts with pagination
func (s *Service) GetAllPosts(limit, offset int) ([]*Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	posts, err := s.repo.GetAll(limit, offset)
	if err != nil {
		s.logger.Error("failed to list posts", "error", err)
		return nil, err
	}
	return posts, nil
}

// UpdatePost applies a partial update. Only the author or an admin may
// modify a post.
func (s *Service) UpdatePost(id, userID int64, isAdmin bool, dto UpdatePostDTO) (*Post, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	post, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrPostNotFound
	}

	if !isAdmin && post.AuthorID != userID {
		s.logger.Warn("unauthorized post update", "post_id", id, "user_id", userID)
		return nil, internal.ErrNotPostAuthor
	}

	if dto.Title != nil {
		post.Title = *dto.Title
	}
	if dto.Body != nil {
		post.Body = *dto.Body
	}
	if dto.Published != nil {
		post.Published = *dto.Published
	}
	post.UpdatedAt = time.Now()

	if err := s.repo.Update(post); err != nil {
		s.logger.Error("failed to update post", "error", err, "post_id", id)
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post. Only the author or an admin may delete.
func (s *Service) DeletePost(id, userID int64, isAdmin bool) error {
	post, err := s.repo.GetByID(id)
	if err != nil {
		return internal.ErrPostNotFound
	}

	if !isAdmin && post.AuthorID != userID {
		s.logger.Warn("unauthorized post delete", "post_id", id, "user_id", userID)
		return internal.ErrNotPostAuthor
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete post", "error", err, "post_id", id)
		return err
	}

	s.logger.Info("post deleted", "post_id", id, "user_id", userID)
	return nil
}
