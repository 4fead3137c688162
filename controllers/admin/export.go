package adminControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ivanfarhani22/management-ecommerce-sub000/models"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

func ExportOrdersToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Items").Preload("Payment").Order("created_at DESC")
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}

		var orders []models.Order
		if err := query.Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{"OrderNumber", "UserID", "Recipient", "City", "Items", "DeliveryMethod", "DeliveryCost", "TotalAmount", "Status", "PaymentMethod", "PaymentStatus", "CreatedAt"}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, o := range orders {
			itemCount := 0
			for _, it := range o.Items {
				itemCount += it.Quantity
			}

			row := sheet.AddRow()
			row.AddCell().SetValue(o.OrderNumber)
			row.AddCell().SetValue(o.UserID)
			row.AddCell().SetValue(o.Recipient)
			row.AddCell().SetValue(o.City)
			row.AddCell().SetValue(itemCount)
			row.AddCell().SetValue(string(o.DeliveryMethod))
			row.AddCell().SetValue(o.DeliveryCost)
			row.AddCell().SetValue(o.TotalAmount)
			row.AddCell().SetValue(string(o.Status))
			row.AddCell().SetValue(string(o.Payment.Method))
			row.AddCell().SetValue(string(o.Payment.Status))
			row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
