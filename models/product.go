package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a catalog entry. Products referenced by cart items are treated
// as read-only by the cart flows; only the back-office endpoints create them.
type Product struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name      string          `gorm:"not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt time.Time       `json:"created_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// String renders the storefront display form, e.g. "コーヒー豆 (¥1480.00)".
func (p *Product) String() string {
	return fmt.Sprintf("%s (¥%s)", p.Name, p.Price.StringFixed(2))
}
