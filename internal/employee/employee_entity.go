package employee

import (
	"time"

	"go-hrdesk/internal/shared/roles"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin      = roles.RoleAdmin
	RoleHR         = roles.RoleHR
	RoleManager    = roles.RoleManager
	RoleFinance    = roles.RoleFinance
	RoleEmployee   = roles.RoleEmployee
	RoleIntern     = roles.RoleIntern
	RoleConsultant = roles.RoleConsultant
)

// ManagementRoles may approve or reject leave applications.
var ManagementRoles = roles.ManagementRoles

type Employee struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName        string    `gorm:"type:varchar(120);not null"`
	Email           string    `gorm:"type:varchar(120);uniqueIndex;not null"`
	Role            string    `gorm:"type:varchar(30);not null;default:'Employee'"`
	ContactNumber   string    `gorm:"type:varchar(15)"`
	AvailableLeaves int       `gorm:"type:int;not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string { return "employees" }

func IsManagementRole(role string) bool {
	return roles.IsManagementRole(role)
}
