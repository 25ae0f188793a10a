package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session maps an opaque browser token to the active customer. The cart
// service treats the table as a plain key-value lookup; rows are written only
// by the development customer-switch endpoint.
type Session struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Token      string    `gorm:"uniqueIndex;not null" json:"-"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null" json:"customer_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
