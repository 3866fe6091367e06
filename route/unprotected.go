package route

import (
	"time"

	"github.com/Brandonkhumalo/harare-wheels-showcase/controller"
	mw "github.com/Brandonkhumalo/harare-wheels-showcase/middlewares"
	"github.com/gin-gonic/gin"
)

func Unprotected(router *gin.Engine) {
	router.POST("/api/auth/login", controller.Login)
	router.GET("/api/filters", controller.GetFilters)
	router.GET("/api/brands", controller.GetBrands)
	router.GET("/api/cars", controller.GetCars)
	router.GET("/api/cars/:id", controller.GetCar)

	contactLimit := mw.NewRateLimiter(5, time.Minute)
	router.POST("/api/contact", contactLimit.Middleware(), controller.SendContact)
}
