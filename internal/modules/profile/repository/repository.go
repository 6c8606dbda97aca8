package repository

import (
	"context"

	"anoa.com/kolabboard/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository interface {
	FindUser(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	SaveStudentProfile(ctx context.Context, profile *entity.StudentProfile) error
	UpdateFacultyProfile(ctx context.Context, userID uuid.UUID, updates map[string]interface{}) (*entity.FacultyProfile, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) FindUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).
		Preload("StudentProfile").
		Preload("FacultyProfile").
		First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SaveStudentProfile upserts on user_id.
func (r *profileRepository) SaveStudentProfile(ctx context.Context, profile *entity.StudentProfile) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"nim", "name", "faculty", "study_program", "updated_at"}),
	}).Create(profile).Error
}

func (r *profileRepository) UpdateFacultyProfile(ctx context.Context, userID uuid.UUID, updates map[string]interface{}) (*entity.FacultyProfile, error) {
	var profile entity.FacultyProfile
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&profile, "user_id = ?", userID).Error; err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&profile).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
