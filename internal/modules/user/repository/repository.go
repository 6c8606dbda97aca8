package repository

import (
	"context"
	"strings"

	"anoa.com/kolabboard/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User, faculty *entity.FacultyProfile) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByIdentifier(ctx context.Context, input string) (*entity.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts the user and, when given, its faculty profile in one
// transaction. Unique violations surface as gorm.ErrDuplicatedKey.
func (r *userRepository) Create(ctx context.Context, user *entity.User, faculty *entity.FacultyProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("StudentProfile", "FacultyProfile").Create(user).Error; err != nil {
			return err
		}

		if faculty != nil {
			faculty.UserID = user.ID
			if err := tx.Create(faculty).Error; err != nil {
				return err
			}
			user.FacultyProfile = faculty
		}

		return nil
	})
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).
		Preload("StudentProfile").
		Preload("FacultyProfile").
		First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", normalizeEmail(email)).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByIdentifier(ctx context.Context, input string) (*entity.User, error) {
	input = strings.TrimSpace(input)
	if strings.Contains(input, "@") {
		return r.FindByEmail(ctx, input)
	}

	var user entity.User
	if err := r.db.WithContext(ctx).
		Where("username = ?", input).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
