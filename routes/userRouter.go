package routes

import (
	controller "golang-exercisetracker/controllers"

	"github.com/gin-gonic/gin"
)

func UserRoutes(incomingRoutes *gin.RouterGroup, userController *controller.UserController) {
	incomingRoutes.POST("/users", userController.CreateUser())
	incomingRoutes.GET("/users", userController.GetUsers())
}
