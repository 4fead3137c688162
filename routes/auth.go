package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/ivanfarhani22/management-ecommerce-sub000/auth"
)

// SetupAuthRoutes registers the public register/login endpoints.
func SetupAuthRoutes(r *gin.Engine, d Deps) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", auth.Register(d.DB))
		authGroup.POST("/login", auth.Login(d.DB))
	}
}
