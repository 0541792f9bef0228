package routes

import (
	"github.com/gin-gonic/gin"

	"pereval/controllers"
)

// Register attaches all API endpoints to the engine.
func Register(r *gin.Engine) {
	r.POST("/submitData/", controllers.SubmitData)
	r.GET("/submitData/", controllers.ListData)
	r.GET("/submitData/:id/", controllers.GetData)
	r.PATCH("/submitData/:id/", controllers.EditData)

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	moderation := r.Group("/moderation", controllers.AuthMiddleware(controllers.RoleModerator))
	{
		moderation.PATCH("/submissions/:id/status", controllers.SetStatus)
	}
}
