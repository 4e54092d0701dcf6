package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

// Account is the locally persisted state for a subject of the identity
// provider. The provider owns authentication; this record owns everything
// the app decides itself (username, admin role, disabled flag). No tokens
// or passwords are ever stored here.
type Account struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Email      string `gorm:"column:email;uniqueIndex" json:"email"`       // subject identifier claim, immutable after provisioning
	Username   string `gorm:"column:username;uniqueIndex" json:"username"` // globally unique, owner-mutable
	IsAdmin    bool   `gorm:"column:is_admin" json:"isAdmin"`              // mutable only by an existing admin
	IsDisabled bool   `gorm:"column:is_disabled" json:"isDisabled"`        // disabled accounts are denied everywhere, admin or not
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
