package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sex values accepted for a customer profile.
const (
	SexMale   = "M"
	SexFemale = "F"
	SexOther  = "O"
)

// Customer is a storefront customer profile. Username and email are globally
// unique; the cart service only reads customers to resolve session identity.
type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Age       int       `json:"age"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Sex       string    `gorm:"size:1;not null" json:"sex"` // M, F, O
	CreatedAt time.Time `json:"created_at"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c *Customer) String() string {
	return fmt.Sprintf("%s (%s)", c.Username, c.Email)
}
