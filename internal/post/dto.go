package post

import "errors"

// CreatePostDTO represents the request payload for creating a post
type CreatePostDTO struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	Published bool   `json:"published"`
}

// Validate validates the CreatePostDTO
func (dto CreatePostDTO) Validate() error {
	if dto.Title == "" {
		return errors.New("title is required")
	}
	if len(dto.Title) > 200 {
		return errors.New("title must be less than 200 characters")
	}
	if dto.Body == "" {
		return errors.New("body is required")
	}
	return nil
}

// UpdatePostDTO represents the request payload for updating a post
type UpdatePostDTO struct {
	Title     *string `json:"title,omitempty"`
	Body      *string `json:"body,omitempty"`
	Published *bool   `json:"published,omitempty"`
}

// Validate validates the UpdatePostDTO
func (dto UpdatePostDTO) Validate() error {
	if dto.Title == nil && dto.Body == nil && dto.Published == nil {
		return errors.New("at least one field must be provided")
	}
	if dto.Title != nil && *dto.Title == "" {
		return errors.New("title cannot be empty")
	}
	if dto.Title != nil && len(*dto.Title) > 200 {
		return errors.New("title must be less than 200 characters")
	}
	if dto.Body != nil && *dto.Body == "" {
		return errors.New("body cannot be empty")
	}
	return nil
}
