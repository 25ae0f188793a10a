package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"issuecart-backend/middleware"
	"issuecart-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	msgNoCustomer      = "顧客情報が見つかりません"
	msgProductNotFound = "商品が見つかりません"
	msgItemNotFound    = "カートアイテムが見つかりません"
	msgInvalidRequest  = "無効なリクエストです"
	msgQuantityTooLow  = "数量は1以上である必要があります"
)

type CartHandler struct {
	DB *gorm.DB
}

// currentCustomer loads the customer referenced by the session, if any.
// A stale session pointing at a deleted customer resolves to nothing.
func (h *CartHandler) currentCustomer(c *gin.Context) (*models.Customer, bool) {
	id, ok := middleware.CustomerID(c)
	if !ok {
		return nil, false
	}
	var customer models.Customer
	if err := h.DB.First(&customer, "id = ?", id).Error; err != nil {
		return nil, false
	}
	return &customer, true
}

// activeCart returns the customer's oldest cart with items and products
// loaded, or gorm.ErrRecordNotFound when the customer has no cart yet.
func (h *CartHandler) activeCart(customerID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := h.DB.Preload("Items.Product").
		Where("customer_id = ?", customerID).
		Order("created_at").
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// getOrCreateCart resolves the customer's active cart, creating one on first
// add. The schema allows several carts per customer; resolution always picks
// the oldest so a single cart stays active by convention.
func (h *CartHandler) getOrCreateCart(customerID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := h.DB.Where("customer_id = ?", customerID).Order("created_at").First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = models.Cart{ID: uuid.New(), CustomerID: customerID}
	if err := h.DB.Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// addItem get-or-creates the (cart, product) line item, incrementing the
// quantity when the line already exists. A concurrent add can win the
// creation race; the unique (cart_id, product_id) index rejects the loser,
// which falls back to the increment path.
func (h *CartHandler) addItem(cart *models.Cart, product *models.Product) error {
	var item models.CartItem
	err := h.DB.Where("cart_id = ? AND product_id = ?", cart.ID, product.ID).First(&item).Error
	switch {
	case err == nil:
		if err := h.incrementQuantity(&item); err != nil {
			return err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{ID: uuid.New(), CartID: cart.ID, ProductID: product.ID, Quantity: 1}
		if createErr := h.DB.Create(&item).Error; createErr != nil {
			if err := h.DB.Where("cart_id = ? AND product_id = ?", cart.ID, product.ID).First(&item).Error; err != nil {
				return createErr
			}
			if err := h.incrementQuantity(&item); err != nil {
				return err
			}
		}
	default:
		return err
	}

	return h.touchCart(cart.ID)
}

func (h *CartHandler) incrementQuantity(item *models.CartItem) error {
	return h.DB.Model(item).UpdateColumn("quantity", gorm.Expr("quantity + ?", 1)).Error
}

// touchCart refreshes updated_at after any item mutation.
func (h *CartHandler) touchCart(cartID uuid.UUID) error {
	return h.DB.Model(&models.Cart{}).
		Where("id = ?", cartID).
		UpdateColumn("updated_at", time.Now()).Error
}

// ownedItem resolves the :item_id parameter to a cart item owned by the
// given customer. Items in other customers' carts are not resolvable and
// answer 404. Writes the error response itself when resolution fails.
func (h *CartHandler) ownedItem(c *gin.Context, customerID uuid.UUID) (*models.CartItem, bool) {
	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": msgItemNotFound})
		return nil, false
	}

	var item models.CartItem
	err = h.DB.Preload("Product").
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.customer_id = ?", itemID, customerID).
		First(&item).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": msgItemNotFound})
		return nil, false
	}
	return &item, true
}

func emptyCartView() gin.H {
	return gin.H{
		"cart":           nil,
		"items":          []gin.H{},
		"total_price":    0,
		"total_quantity": 0,
	}
}

// GetCart returns the session customer's cart with items, subtotals and
// totals. Having no session customer or no cart is a valid empty-cart state,
// not an error.
func (h *CartHandler) GetCart(c *gin.Context) {
	customer, ok := h.currentCustomer(c)
	if !ok {
		c.JSON(http.StatusOK, emptyCartView())
		return
	}

	cart, err := h.activeCart(customer.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, emptyCartView())
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "カートの取得に失敗しました"})
		return
	}

	items := make([]gin.H, 0, len(cart.Items))
	for i := range cart.Items {
		item := &cart.Items[i]
		items = append(items, gin.H{
			"id":       item.ID,
			"product":  productView(&item.Product),
			"quantity": item.Quantity,
			"subtotal": item.Subtotal().InexactFloat64(),
			"added_at": item.AddedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"cart": gin.H{
			"id":          cart.ID,
			"customer_id": cart.CustomerID,
			"created_at":  cart.CreatedAt,
			"updated_at":  cart.UpdatedAt,
		},
		"items":          items,
		"total_price":    cart.TotalPrice().InexactFloat64(),
		"total_quantity": cart.TotalQuantity(),
	})
}

// AddToCart adds one unit of the product to the customer's cart, creating
// the cart and the line item as needed. Adding a product already in the cart
// increments its quantity by 1.
func (h *CartHandler) AddToCart(c *gin.Context) {
	customer, ok := h.currentCustomer(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msgNoCustomer})
		return
	}

	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": msgProductNotFound})
		return
	}
	var product models.Product
	if err := h.DB.First(&product, "id = ?", productID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": msgProductNotFound})
		return
	}

	cart, err := h.getOrCreateCart(customer.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "カートの作成に失敗しました"})
		return
	}

	if err := h.addItem(cart, &product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "カートへの追加に失敗しました"})
		return
	}

	// Reload for the badge count so the response reflects the mutation
	cart, err = h.activeCart(customer.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "カートの取得に失敗しました"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    fmt.Sprintf("%sをカートに追加しました", product.Name),
		"cart_count": cart.TotalQuantity(),
	})
}

// UpdateCartItem sets a line item's quantity to an absolute value parsed
// from the request. The quantity arrives as untrusted text and is validated
// before any mutation.
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	customer, ok := h.currentCustomer(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msgNoCustomer})
		return
	}

	item, ok := h.ownedItem(c, customer.ID)
	if !ok {
		return
	}

	quantity, err := strconv.Atoi(c.PostForm("quantity"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msgInvalidRequest})
		return
	}
	if quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msgQuantityTooLow})
		return
	}

	if err := h.DB.Model(item).UpdateColumn("quantity", quantity).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "数量の更新に失敗しました"})
		return
	}
	if err := h.touchCart(item.CartID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "数量の更新に失敗しました"})
		return
	}
	item.Quantity = quantity

	cart, err := h.cartWithItems(item.CartID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "カートの取得に失敗しました"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "数量を更新しました",
		"subtotal":   item.Subtotal().InexactFloat64(),
		"cart_total": cart.TotalPrice().InexactFloat64(),
		"cart_count": cart.TotalQuantity(),
	})
}

// RemoveFromCart deletes a line item and returns the owning cart's
// post-deletion totals.
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	customer, ok := h.currentCustomer(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msgNoCustomer})
		return
	}

	item, ok := h.ownedItem(c, customer.ID)
	if !ok {
		return
	}

	cartID := item.CartID
	if err := h.DB.Delete(&models.CartItem{}, "id = ?", item.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "カートからの削除に失敗しました"})
		return
	}
	if err := h.touchCart(cartID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "カートからの削除に失敗しました"})
		return
	}

	cart, err := h.cartWithItems(cartID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "カートの取得に失敗しました"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "商品をカートから削除しました",
		"cart_total": cart.TotalPrice().InexactFloat64(),
		"cart_count": cart.TotalQuantity(),
	})
}

func (h *CartHandler) cartWithItems(cartID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	if err := h.DB.Preload("Items.Product").First(&cart, "id = ?", cartID).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}
