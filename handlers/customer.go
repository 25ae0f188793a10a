package handlers

import (
	"errors"
	"net/http"
	"time"

	"issuecart-backend/middleware"
	"issuecart-backend/models"
	"issuecart-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// productListPath is where the customer switch redirects, valid or not.
const productListPath = "/api/products"

type CustomerHandler struct {
	DB *gorm.DB
}

// SetCustomer switches the active session customer. This is a development
// aid, not a login: the redirect always succeeds, and an unknown id simply
// leaves the session untouched.
func (h *CustomerHandler) SetCustomer(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("customer_id"))
	if err != nil {
		c.Redirect(http.StatusFound, productListPath)
		return
	}

	var customer models.Customer
	if err := h.DB.First(&customer, "id = ?", customerID).Error; err != nil {
		c.Redirect(http.StatusFound, productListPath)
		return
	}

	token, cookieErr := c.Cookie(middleware.SessionCookie)
	if cookieErr != nil || token == "" {
		token = uuid.NewString()
	}

	var session models.Session
	err = h.DB.Where("token = ?", token).First(&session).Error
	switch {
	case err == nil:
		if err := h.DB.Model(&session).Update("customer_id", customer.ID).Error; err != nil {
			c.Redirect(http.StatusFound, productListPath)
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		session = models.Session{ID: uuid.New(), Token: token, CustomerID: customer.ID}
		if err := h.DB.Create(&session).Error; err != nil {
			c.Redirect(http.StatusFound, productListPath)
			return
		}
	default:
		c.Redirect(http.StatusFound, productListPath)
		return
	}

	c.SetCookie(middleware.SessionCookie, token, int((30 * 24 * time.Hour).Seconds()), "/", "", false, true)
	c.Redirect(http.StatusFound, productListPath)
}

// GetCustomers lists customer profiles for the development switch UI.
func (h *CustomerHandler) GetCustomers(c *gin.Context) {
	var customers []models.Customer
	if err := h.DB.Order("created_at").Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "顧客一覧の取得に失敗しました"})
		return
	}
	c.JSON(http.StatusOK, customers)
}

// CreateCustomer registers a customer profile (back-office use). Username
// and email are globally unique.
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Age      int    `json:"age" binding:"required,gte=0"`
		Email    string `json:"email" binding:"required,email"`
		Sex      string `json:"sex" binding:"required,oneof=M F O"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": utils.SanitizeValidationError(err)})
		return
	}

	var count int64
	h.DB.Model(&models.Customer{}).
		Where("username = ? OR email = ?", req.Username, req.Email).
		Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "ユーザー名またはメールアドレスは既に登録されています"})
		return
	}

	customer := models.Customer{
		ID:       uuid.New(),
		Username: req.Username,
		Age:      req.Age,
		Email:    req.Email,
		Sex:      req.Sex,
	}
	if err := h.DB.Create(&customer).Error; err != nil {
		// Lost a race against a concurrent registration; the unique index
		// is the source of truth, so report the same conflict.
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "ユーザー名またはメールアドレスは既に登録されています"})
		return
	}

	c.JSON(http.StatusCreated, customer)
}
