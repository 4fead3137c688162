package routes

import (
	"github.com/gin-gonic/gin"
	adminControllers "github.com/ivanfarhani22/management-ecommerce-sub000/controllers/admin"
	orderControllers "github.com/ivanfarhani22/management-ecommerce-sub000/controllers/order"
	productcontroller "github.com/ivanfarhani22/management-ecommerce-sub000/controllers/product"
	"github.com/ivanfarhani22/management-ecommerce-sub000/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires API-key middleware.
func SetupAdminRoutes(r *gin.Engine, d Deps) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.RequireAdminKey)
	{
		adminGroup.GET("/dashboard", adminControllers.Dashboard(d.DB))

		// Product management
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(d.DB))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(d.DB))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(d.DB))
			productAdmin.GET("/export-excel", productcontroller.ExportProductsToExcel(d.DB))
		}

		// Category management
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", productcontroller.CreateCategory(d.DB))
			categoryAdmin.PUT("/:id", productcontroller.UpdateCategory(d.DB))
			categoryAdmin.DELETE("/:id", productcontroller.DeleteCategory(d.DB))
		}

		// Order management
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.ListAllOrders(d.Orders))
			orderAdmin.PUT("/:orderID/status", orderControllers.UpdateOrderStatus(d.Orders))
			orderAdmin.GET("/export-excel", adminControllers.ExportOrdersToExcel(d.DB))
		}
	}
}
