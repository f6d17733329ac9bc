package domain

import (
	"time"

	"gorm.io/gorm"
)

// User represents a shop owner account (domain model)
type User struct {
	ID          string         `json:"id" gorm:"primaryKey;type:uuid"`
	Name        string         `json:"name" gorm:"not null"`
	Email       string         `json:"email" gorm:"uniqueIndex;not null"`
	Password    string         `json:"-" gorm:"not null"` // Never expose password in JSON
	Picture     string         `json:"picture,omitempty"`
	Initialized bool           `json:"initialized" gorm:"default:false"` // seed-once marker
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"` // Soft delete
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// UserRepository defines the contract for user data access
type UserRepository interface {
	Create(user *User) error
	FindByID(id string) (*User, error)
	FindByEmail(email string) (*User, error)
	Update(user *User) error
	Delete(id string) error
	Count() (int64, error)

	// MarkInitialized flips the seed-once marker. It returns true only for
	// the single caller that observed the marker unset, so concurrent first
	// logins cannot both seed.
	MarkInitialized(id string) (bool, error)
}
