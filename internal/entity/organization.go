package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Organization struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner     *User     `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Members     []OrganizationMember `gorm:"constraint:OnDelete:CASCADE" json:"members,omitempty"`
	Invitations []Invitation         `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Boards      []Board              `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrganizationMember is unique per (user, organization).
type OrganizationMember struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_organization_members_user_org;index" json:"user_id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_organization_members_user_org;index" json:"organization_id"`
	User           *User     `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (m *OrganizationMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
)

// Invitation: at most one pending row per (organization, email). The partial
// unique index backing that rule is created in bootstrap.Migrate.
type Invitation struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID uuid.UUID     `gorm:"type:uuid;not null;index" json:"organization_id"`
	Organization   *Organization `json:"organization,omitempty"`
	UserID         uuid.UUID     `gorm:"type:uuid;not null;index" json:"user_id"`
	User           *User         `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Email          string        `gorm:"size:100;not null" json:"email"`
	Status         string        `gorm:"size:20;not null;default:pending" json:"status"`
	CreatedAt      time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (i *Invitation) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.Status == "" {
		i.Status = InvitationPending
	}
	return nil
}
