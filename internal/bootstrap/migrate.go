package bootstrap

import (
	"fmt"

	"anoa.com/kolabboard/internal/entity"
	"gorm.io/gorm"
)

// Partial unique index; gorm tags can't express the WHERE clause. Both
// postgres and sqlite accept this statement.
const pendingInvitationIndex = `CREATE UNIQUE INDEX IF NOT EXISTS uq_invitations_pending_org_email
	ON invitations (organization_id, email) WHERE status = 'pending'`

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&entity.User{},
		&entity.StudentProfile{},
		&entity.FacultyProfile{},
		&entity.Organization{},
		&entity.OrganizationMember{},
		&entity.Invitation{},
		&entity.Board{},
		&entity.List{},
		&entity.Card{},
		&entity.File{},
		&entity.Revision{},
		&entity.Notification{},
		&entity.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if err := db.Exec(pendingInvitationIndex).Error; err != nil {
		return fmt.Errorf("create pending invitation index: %w", err)
	}

	return nil
}
