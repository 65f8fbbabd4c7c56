package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	UserRoleCustomer = "customer"
	UserRoleManager  = "manager"
	UserRoleAdmin    = "admin"
)

// DbUser represents a persisted bank account holder.
type DbUser struct {
	UID          string    `gorm:"column:uid;type:varchar(36);primaryKey" json:"uid"`
	Username     string    `gorm:"column:username;type:varchar(50);uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	Balance      float64   `gorm:"column:balance;type:decimal(12,2);not null" json:"balance"`
	Phone        string    `gorm:"column:phone;type:varchar(20)" json:"phone,omitempty"`
	Role         string    `gorm:"column:role;type:varchar(20);not null;default:customer" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName overrides default pluralised name.
func (DbUser) TableName() string {
	return "koduser"
}

// BeforeCreate assigns the uid when one was not provided.
func (u *DbUser) BeforeCreate(tx *gorm.DB) error {
	if u.UID == "" {
		u.UID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = UserRoleCustomer
	}
	return nil
}

// UserSummary is the user description returned to clients. It never
// carries the password hash.
type UserSummary struct {
	UID      string  `json:"uid"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Balance  float64 `json:"balance"`
	Role     string  `json:"role"`
}

// UserProfile extends the summary with the remaining profile fields.
type UserProfile struct {
	UID       string    `json:"uid"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	Balance   float64   `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}
