package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DbUserToken is the server-side session record backing a signed JWT.
// The row is what makes a cryptographically valid token revocable:
// logout deletes it, and validation requires it to still exist.
type DbUserToken struct {
	TID       string    `gorm:"column:tid;type:varchar(36);primaryKey" json:"tid"`
	Token     string    `gorm:"column:token;type:text;not null" json:"-"`
	UID       string    `gorm:"column:uid;type:varchar(36);not null;index" json:"uid"`
	User      DbUser    `gorm:"foreignKey:UID;references:UID;constraint:OnDelete:CASCADE" json:"-"`
	Expiry    time.Time `gorm:"column:expiry;not null" json:"expiry"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides default pluralised name.
func (DbUserToken) TableName() string {
	return "usertoken"
}

// BeforeCreate assigns the tid when one was not provided.
func (t *DbUserToken) BeforeCreate(tx *gorm.DB) error {
	if t.TID == "" {
		t.TID = uuid.NewString()
	}
	return nil
}

// Expired reports whether the stored row has passed its expiry.
func (t *DbUserToken) Expired(now time.Time) bool {
	return now.After(t.Expiry)
}
