package routes

import (
	controller "golang-exercisetracker/controllers"

	"github.com/gin-gonic/gin"
)

func ExerciseRoutes(incomingRoutes *gin.RouterGroup, exerciseController *controller.ExerciseController) {
	incomingRoutes.POST("/users/:user_id/exercises", exerciseController.AddExercise())
	incomingRoutes.GET("/users/:user_id/logs", exerciseController.GetLogs())
}
