package route

import (
	"github.com/Brandonkhumalo/harare-wheels-showcase/controller"
	mw "github.com/Brandonkhumalo/harare-wheels-showcase/middlewares"
	"github.com/gin-gonic/gin"
)

func Protected(router *gin.Engine) {

	protected := router.Group("/api")

	protected.Use(mw.JWT())
	protected.POST("/auth/logout", controller.Logout)
	protected.GET("/auth/verify", controller.VerifyToken)
	protected.POST("/brands", controller.CreateBrand)
	protected.DELETE("/brands/:id", controller.DeleteBrand)
	protected.POST("/cars", controller.CreateCar)
	protected.PUT("/cars/:id", controller.UpdateCar)
	protected.DELETE("/cars/:id", controller.DeleteCar)
	protected.DELETE("/cars/:id/images/:imageId", controller.DeleteCarImage)
}
