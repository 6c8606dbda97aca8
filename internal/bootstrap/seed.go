package bootstrap

import (
	"anoa.com/kolabboard/internal/entity"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	demoPassword     = "password123"
	demoStudentEmail = "student@kolabboard.dev"
	demoFacultyEmail = "faculty@kolabboard.dev"
)

// SeedDemo creates a student, a faculty member and a shared organization for
// local development. Running it twice is a no-op.
func SeedDemo(db *gorm.DB, log *zap.Logger) error {
	var count int64
	if err := db.Model(&entity.User{}).
		Where("email IN ?", []string{demoStudentEmail, demoFacultyEmail}).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info("demo users already exist, skipping seed")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		student := entity.User{
			Username:     "demo_student",
			Email:        demoStudentEmail,
			PasswordHash: string(hash),
			Role:         entity.RoleStudent,
			StudentProfile: &entity.StudentProfile{
				NIM:  "1301000001",
				Name: "Demo Student",
			},
		}
		faculty := entity.User{
			Username:     "demo_faculty",
			Email:        demoFacultyEmail,
			PasswordHash: string(hash),
			Role:         entity.RoleFaculty,
			FacultyProfile: &entity.FacultyProfile{
				NIP:  "1980000001",
				Name: "Demo Lecturer",
			},
		}
		for _, u := range []*entity.User{&student, &faculty} {
			if err := tx.Create(u).Error; err != nil {
				return err
			}
		}

		org := entity.Organization{
			Name:    "Demo Workspace",
			OwnerID: student.ID,
			Members: []entity.OrganizationMember{
				{UserID: student.ID},
				{UserID: faculty.ID},
			},
		}
		if err := tx.Create(&org).Error; err != nil {
			return err
		}

		log.Info("demo data seeded",
			zap.String("student", demoStudentEmail),
			zap.String("faculty", demoFacultyEmail),
			zap.String("password", demoPassword),
		)
		return nil
	})
}
