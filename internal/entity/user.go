package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is stored upper-case. Tokens carry the lower-cased form, so every
// comparison goes through NormalizeRole or Role.Is.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleFaculty Role = "FACULTY"
)

func NormalizeRole(raw string) Role {
	return Role(strings.ToUpper(strings.TrimSpace(raw)))
}

func (r Role) Is(other Role) bool {
	return NormalizeRole(string(r)) == NormalizeRole(string(other))
}

func (r Role) String() string {
	return string(r)
}

type User struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Username       string          `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email          string          `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash   string          `gorm:"size:255;not null" json:"-"`
	Role           Role            `gorm:"size:20;not null;index" json:"role"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	StudentProfile *StudentProfile `gorm:"constraint:OnDelete:CASCADE" json:"student_profile,omitempty"`
	FacultyProfile *FacultyProfile `gorm:"constraint:OnDelete:CASCADE" json:"faculty_profile,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.Role = NormalizeRole(string(u.Role))
	return nil
}

type StudentProfile struct {
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	NIM          string    `gorm:"size:30" json:"nim"`
	Name         string    `gorm:"size:100" json:"name"`
	Faculty      string    `gorm:"size:100" json:"faculty"`
	StudyProgram string    `gorm:"size:100" json:"study_program"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type FacultyProfile struct {
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	NIP          string    `gorm:"size:30" json:"nip"`
	Name         string    `gorm:"size:100" json:"name"`
	Faculty      string    `gorm:"size:100" json:"faculty"`
	StudyProgram string    `gorm:"size:100" json:"study_program"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
