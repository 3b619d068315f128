package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/bloghub/blog-management/internal/auth"
)

// User is the persistence model. The refresh-token collection is embedded
// in the aggregate as a has-many association backed by its own table.
type User struct {
	ID            int64          `gorm:"primaryKey"`
	Email         string         `gorm:"uniqueIndex;not null"`
	PasswordHash  string         `gorm:"column:password_hash;not null"`
	IsActive      bool           `gorm:"column:is_active;default:true"`
	CreatedAt     time.Time      `gorm:"column:created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at"`
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (User) TableName() string { return "users" }

type RefreshToken struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"column:user_id;index;not null"`
	Token     string    `gorm:"index;not null"`
	ExpiresAt time.Time `gorm:"column:expires_at;index;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (RefreshToken) TableName() string { return "refresh_tokens" }

// Repository implements auth.UserRepository on GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) FindByEmail(email string) (*auth.User, error) {
	var model User
	err := r.db.Preload("RefreshTokens").
		Where("email = ? AND is_active = ?", email, true).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}
	return r.toDomain(&model)
}

func (r *Repository) FindByID(userID int64) (*auth.User, error) {
	var model User
	err := r.db.Preload("RefreshTokens").
		Where("id = ? AND is_active = ?", userID, true).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}
	return r.toDomain(&model)
}

func (r *Repository) AddRefreshToken(userID int64, token auth.RefreshToken) error {
	row := RefreshToken{
		UserID:    userID,
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
		CreatedAt: token.CreatedAt,
	}
	if err := r.db.Create(&row).Error; err != nil {
		return err
	}
	return r.touch(userID)
}

func (r *Repository) RemoveRefreshToken(userID int64, token string) error {
	if err := r.db.Where("user_id = ? AND token = ?", userID, token).
		Delete(&RefreshToken{}).Error; err != nil {
		return err
	}
	return r.touch(userID)
}

func (r *Repository) CleanExpiredTokens(userID int64) error {
	return r.db.Where("user_id = ? AND expires_at <= ?", userID, time.Now()).
		Delete(&RefreshToken{}).Error
}

func (r *Repository) Create(user *auth.User) error {
	now := time.Now()
	model := User{
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := r.db.Create(&model).Error; err != nil {
		return err
	}
	user.ID = model.ID
	user.CreatedAt = model.CreatedAt
	user.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *Repository) Update(user *auth.User) error {
	return r.db.Model(&User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"email":         user.Email,
			"password_hash": user.PasswordHash,
			"updated_at":    time.Now(),
		}).Error
}

func (r *Repository) touch(userID int64) error {
	return r.db.Model(&User{}).
		Where("id = ?", userID).
		Update("updated_at", time.Now()).Error
}

func (r *Repository) toDomain(model *User) (*auth.User, error) {
	permissions, err := r.permissionsFor(model.ID)
	if err != nil {
		return nil, err
	}

	tokens := make([]auth.RefreshToken, 0, len(model.RefreshTokens))
	for _, t := range model.RefreshTokens {
		tokens = append(tokens, auth.RefreshToken{
			Token:     t.Token,
			ExpiresAt: t.ExpiresAt,
			CreatedAt: t.CreatedAt,
		})
	}

	return &auth.User{
		ID:            model.ID,
		Email:         model.Email,
		PasswordHash:  model.PasswordHash,
		IsActive:      model.IsActive,
		Permissions:   permissions,
		RefreshTokens: tokens,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}, nil
}

func (r *Repository) permissionsFor(userID int64) ([]string, error) {
	permQuery := `SELECT p.name
	             FROM permissions p
	             JOIN user_permissions up ON p.id = up.permission_id
	             WHERE up.user_id = ?`

	rows, err := r.db.Raw(permQuery, userID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var permissions []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		permissions = append(permissions, name)
	}
	return permissions, rows.Err()
}
