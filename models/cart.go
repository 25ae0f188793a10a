package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Cart is a customer-owned collection of line items. The schema allows a
// customer to own several carts; the handlers always resolve the oldest one
// via get-or-create, so a single active cart exists by convention.
type Cart struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CustomerID uuid.UUID  `gorm:"type:uuid;not null;index" json:"customer_id"`
	Customer   Customer   `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"customer,omitempty"`
	Items      []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TotalPrice sums the subtotal of every loaded item. Totals are always
// recomputed from the loaded Items slice, never cached; callers must preload
// Items.Product first.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Items {
		total = total.Add(c.Items[i].Subtotal())
	}
	return total
}

// TotalQuantity sums the quantity of every loaded item.
func (c *Cart) TotalQuantity() int {
	total := 0
	for i := range c.Items {
		total += c.Items[i].Quantity
	}
	return total
}

// String renders the display form, e.g. "tanakaのカート (ID: <uuid>)".
// Customer must be loaded.
func (c *Cart) String() string {
	return fmt.Sprintf("%sのカート (ID: %s)", c.Customer.Username, c.ID)
}
