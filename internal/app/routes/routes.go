package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/emre/tutorhub/internal/app/controllers"
	"github.com/emre/tutorhub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	profileController *controllers.ProfileController,
	tutorController *controllers.TutorController,
	relationshipController *controllers.RelationshipController,
	messageController *controllers.MessageController,
	userController *controllers.UserController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
		auth.POST("/logout", authController.Logout)
	}

	// Tutor directory is browsable without a session
	v1.GET("/tutors", tutorController.ListTutors)
	v1.GET("/tutors/:id", tutorController.GetTutor)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Profile and role selection
		profile := authenticated.Group("/profile")
		{
			profile.POST("/role", profileController.ChooseRole)
			profile.PUT("/entry", profileController.UpdateEntry)
		}
		authenticated.GET("/users/me", profileController.GetMe)
		authenticated.DELETE("/users/me", userController.DeleteMe)

		// Pairing requests (student side)
		authenticated.POST("/tutors/:id/request", relationshipController.RequestTutor)

		// Tutor-side pairing transitions
		students := authenticated.Group("/students")
		{
			students.POST("/:id/confirm", relationshipController.ConfirmStudent)
			students.DELETE("/:id/relationship", relationshipController.RemoveStudent)
		}

		authenticated.GET("/relationships", relationshipController.ListRelationships)

		// Conversations
		messages := authenticated.Group("/messages")
		{
			messages.GET("/:userId", messageController.GetThread)
			messages.POST("/:userId", messageController.PostMessage)
		}

		// Administration
		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.StaffRequired())
		{
			admin.GET("/users", userController.ListUsers)
			admin.DELETE("/users/:id", userController.DeleteUser)
		}
	}
}
