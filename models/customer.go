package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer is the party a sale, return, or store credit belongs to.
type Customer struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email" gorm:"index"`
	Phone     string         `json:"phone,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
