package models

import (
	"time"
)

// Staff roles
const (
	StaffRoleClerk   = "clerk"
	StaffRoleManager = "manager"
)

// Staff is a back-office user. The username ends up in the processed_by audit
// field of every return they act on.
type Staff struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `json:"username" gorm:"uniqueIndex"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
