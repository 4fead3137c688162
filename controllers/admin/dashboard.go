package adminControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ivanfarhani22/management-ecommerce-sub000/models"
	"gorm.io/gorm"
)

type statusCount struct {
	Status models.OrderStatus `json:"status"`
	Count  int64              `json:"count"`
}

// GET /admin/dashboard
func Dashboard(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var productCount, userCount, orderCount int64
		if err := db.Model(&models.Product{}).Count(&productCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
			return
		}
		db.Model(&models.User{}).Count(&userCount)
		db.Model(&models.Order{}).Count(&orderCount)

		var byStatus []statusCount
		db.Model(&models.Order{}).
			Select("status, COUNT(*) AS count").
			Group("status").
			Scan(&byStatus)

		// Revenue counts orders that made it past payment, whatever
		// fulfilment state they are in now.
		var revenue float64
		db.Model(&models.Order{}).
			Where("status NOT IN ?", []models.OrderStatus{models.OrderStatusPending, models.OrderStatusCancelled}).
			Select("COALESCE(SUM(total_amount), 0)").
			Scan(&revenue)

		var lowStock []models.Product
		db.Where("stock <= ?", 5).Order("stock ASC").Limit(10).Find(&lowStock)

		c.JSON(http.StatusOK, gin.H{
			"total_products":   productCount,
			"total_users":      userCount,
			"total_orders":     orderCount,
			"orders_by_status": byStatus,
			"revenue":          revenue,
			"low_stock":        lowStock,
		})
	}
}
