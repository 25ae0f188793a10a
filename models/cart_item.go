package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartItem links a cart to a product with a quantity. The composite unique
// index guarantees at most one line per (cart, product) pair; repeated adds
// increment the quantity instead of inserting a second row.
//
// The check constraint only forbids negative quantities. The "at least 1"
// business rule lives in the handlers so a zero written by a bug is a data
// problem, not a constraint crash.
type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CartID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_product" json:"cart_id"`
	Cart      Cart      `gorm:"foreignKey:CartID" json:"-"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_product" json:"product_id"`
	Product   Product   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product"`
	Quantity  int       `gorm:"not null;default:1;check:quantity >= 0" json:"quantity"`
	AddedAt   time.Time `gorm:"autoCreateTime" json:"added_at"`
}

func (ci *CartItem) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == uuid.Nil {
		ci.ID = uuid.New()
	}
	return nil
}

// Subtotal is product price times quantity, fixed-point with 2 fractional
// digits. Product must be loaded.
func (ci *CartItem) Subtotal() decimal.Decimal {
	return ci.Product.Price.Mul(decimal.NewFromInt(int64(ci.Quantity)))
}

// String renders the display form, e.g. "りんご x 3". Product must be loaded.
func (ci *CartItem) String() string {
	return fmt.Sprintf("%s x %d", ci.Product.Name, ci.Quantity)
}
