package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Board belongs to an Organization; only CreatorID may mutate it.
type Board struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title          string    `gorm:"size:150;not null" json:"title"`
	Background     string    `gorm:"size:255" json:"background"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	CreatorID      uuid.UUID `gorm:"type:uuid;not null;index" json:"creator_id"`
	Creator        *User     `gorm:"foreignKey:CreatorID" json:"-"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Lists     []List     `gorm:"constraint:OnDelete:CASCADE" json:"lists,omitempty"`
	Cards     []Card     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	AuditLogs []AuditLog `gorm:"constraint:OnDelete:SET NULL" json:"-"`
}

func (b *Board) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// List positions are assigned as the count of existing lists at creation and
// are never renumbered, so gaps after a delete are expected.
type List struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"size:150;not null" json:"title"`
	Position  int       `gorm:"not null;default:0;index" json:"position"`
	BoardID   uuid.UUID `gorm:"type:uuid;not null;index" json:"board_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Cards []Card `gorm:"constraint:OnDelete:SET NULL" json:"cards,omitempty"`
}

func (l *List) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

type Card struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Deadline    *time.Time `json:"deadline"`
	BoardID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"board_id"`
	ListID      *uuid.UUID `gorm:"type:uuid;index" json:"list_id"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Files     []File     `gorm:"constraint:OnDelete:CASCADE" json:"files,omitempty"`
	Revisions []Revision `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (c *Card) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type File struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	URL  string    `gorm:"type:text;not null" json:"url"`
	Name string    `gorm:"size:255;not null" json:"name"`
	Type string    `gorm:"size:100" json:"type"`
	// StorageKey is set only for files uploaded through the storage provider.
	StorageKey string    `gorm:"type:text" json:"-"`
	CardID     uuid.UUID `gorm:"type:uuid;not null;index" json:"card_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (f *File) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// Revision is append-only.
type Revision struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CardID    uuid.UUID `gorm:"type:uuid;not null;index" json:"card_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (r *Revision) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
