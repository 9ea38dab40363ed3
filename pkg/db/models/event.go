package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/plannerhq/eventra-backend/pkg/db/types"
	"github.com/plannerhq/eventra-backend/pkg/enums"
)

// Event is the root aggregate every plan, task, and budget hangs off.
type Event struct {
	ID            uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string            `gorm:"column:name;not null"`
	Description   *string           `gorm:"column:description"`
	Location      *string           `gorm:"column:location"`
	StartDate     time.Time         `gorm:"column:start_date;not null"`
	EndDate       time.Time         `gorm:"column:end_date;not null"`
	Status        enums.EventStatus `gorm:"column:status;type:text;not null;default:'Draft'"`
	ClientID      *uuid.UUID        `gorm:"column:client_id;type:uuid"`
	ManagerID     *uuid.UUID        `gorm:"column:manager_id;type:uuid"`
	TeamMemberIDs dbtypes.UUIDArray `gorm:"type:uuid[];column:team_member_ids;not null"`
	CreatedBy     uuid.UUID         `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
