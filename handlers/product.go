package handlers

import (
	"net/http"

	"issuecart-backend/middleware"
	"issuecart-backend/models"
	"issuecart-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductHandler struct {
	DB *gorm.DB
}

// productView serializes a product for responses, converting the decimal
// price to a float at the boundary.
func productView(p *models.Product) gin.H {
	return gin.H{
		"id":    p.ID,
		"name":  p.Name,
		"price": p.Price.InexactFloat64(),
	}
}

// GetProducts lists the catalog together with the session customer's cart
// badge count. Anonymous visitors get a count of 0.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	var products []models.Product
	if err := h.DB.Order("created_at").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "商品一覧の取得に失敗しました"})
		return
	}

	cartCount := 0
	if customerID, ok := middleware.CustomerID(c); ok {
		var cart models.Cart
		err := h.DB.Preload("Items").
			Where("customer_id = ?", customerID).
			Order("created_at").
			First(&cart).Error
		if err == nil {
			cartCount = cart.TotalQuantity()
		}
	}

	views := make([]gin.H, 0, len(products))
	for i := range products {
		views = append(views, productView(&products[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"products":   views,
		"cart_count": cartCount,
	})
}

// CreateProduct adds a catalog entry (back-office use). The price arrives as
// text and is parsed into a fixed-point decimal with 2 fractional digits.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req struct {
		Name  string `json:"name" binding:"required"`
		Price string `json:"price" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": utils.SanitizeValidationError(err)})
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "価格は0以上の数値で指定してください"})
		return
	}

	product := models.Product{ID: uuid.New(), Name: req.Name, Price: price.Round(2)}
	if err := h.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "商品の登録に失敗しました"})
		return
	}

	c.JSON(http.StatusCreated, productView(&product))
}
