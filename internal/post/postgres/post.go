package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/bloghub/blog-management/internal/post"
)

// PostRepository implements the post.Repository interface using GORM
type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) post.Repository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(p *post.Post) error {
	return r.db.Create(p).Error
}

func (r *PostRepository) GetByID(id int64) (*post.Post, error) {
	var p post.Post
	err := r.db.Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, post.ErrPostNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostRepository) GetAll(limit, offset int) ([]*post.Post, error) {
	var posts []*post.Post
	err := r.db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *PostRepository) GetByAuthorID(authorID int64, limit, offset int) ([]*post.Post, error) {
	var posts []*post.Post
	err := r.db.Where("author_id = ?", authorID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *PostRepository) Update(p *post.Post) error {
	p.UpdatedAt = time.Now()
	return r.db.Save(p).Error
}

func (r *PostRepository) Delete(id int64) error {
	result := r.db.Where("id = ?", id).Delete(&post.Post{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return post.ErrPostNotFound
	}
	return nil
}
