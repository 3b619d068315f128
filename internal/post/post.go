package post

import (
	"errors"
	"time"
)

// Post represents a blog post entity
type Post struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	AuthorID  int64     `json:"author_id" gorm:"column:author_id;not null"`
	Title     string    `json:"title" gorm:"not null"`
	Body      string    `json:"body" gorm:"not null"`
	Published bool      `json:"published" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (Post) TableName() string {
	return "posts"
}

// Repository defines the data access methods for posts
type Repository interface {
	Create(post *Post) error
	GetByID(id int64) (*Post, error)
	GetAll(limit, offset int) ([]*Post, error)
	GetByAuthorID(authorID int64, limit, offset int) ([]*Post, error)
	Update(post *Post) error
	Delete(id int64) error
}

// ErrPostNotFound is returned by repositories when no post row matches.
var ErrPostNotFound = errors.New("post not found")
