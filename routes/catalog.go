package routes

import (
	"github.com/gin-gonic/gin"
	productcontroller "github.com/ivanfarhani22/management-ecommerce-sub000/controllers/product"
)

// SetupCatalogRoutes registers the public product browsing endpoints.
func SetupCatalogRoutes(r *gin.Engine, d Deps) {
	products := r.Group("/products")
	{
		products.GET("", productcontroller.GetProducts(d.DB))
		products.GET("/:id", productcontroller.GetProductByID(d.DB))
	}

	r.GET("/categories", productcontroller.GetCategories(d.DB))
}
