package api

import (
	"net/http"

	"edufeed-backend/internal/auth/delivery"
	authUsecase "edufeed-backend/internal/auth/usecase"
	feedDelivery "edufeed-backend/internal/feed/delivery"
	feedUsecase "edufeed-backend/internal/feed/usecase"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(r *gin.Engine, authUc authUsecase.AuthUsecase, feedUc feedUsecase.FeedUsecase) {
	authHandler := delivery.NewAuthHandler(authUc)
	feedHandler := feedDelivery.NewFeedHandler(feedUc)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/register", authHandler.Register)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", delivery.AuthMiddleware(authUc), authHandler.Logout)
			auth.GET("/me", delivery.AuthMiddleware(authUc), authHandler.Me)
		}

		// User preference routes (protected): device token + mutes
		users := api.Group("/users")
		users.Use(delivery.AuthMiddleware(authUc))
		{
			users.POST("/device-token", authHandler.RegisterDeviceToken)
			users.DELETE("/device-token", authHandler.ClearDeviceToken)

			users.GET("/muted-instructors", authHandler.ListMutedInstructors)
			users.POST("/muted-instructors", authHandler.MuteInstructor)
			users.DELETE("/muted-instructors/:instructorID", authHandler.UnmuteInstructor)
			users.GET("/muted-instructors/:instructorID/status", authHandler.MutedStatus)
		}

		// Feed routes (protected)
		posts := api.Group("/posts")
		posts.Use(delivery.AuthMiddleware(authUc))
		{
			posts.GET("", feedHandler.ListPosts)
			posts.POST("", feedHandler.CreatePost)
			posts.GET("/:id", feedHandler.GetPost)
			posts.PUT("/:id", feedHandler.UpdatePost)
			posts.DELETE("/:id", feedHandler.DeletePost)
			posts.GET("/:id/comments", feedHandler.ListComments)
			posts.POST("/:id/comments", feedHandler.AddComment)
			posts.POST("/:id/reactions", feedHandler.React)
			posts.DELETE("/:id/reactions", feedHandler.RemoveReaction)
		}

		polls := api.Group("/polls")
		polls.Use(delivery.AuthMiddleware(authUc))
		{
			polls.GET("", feedHandler.ListPolls)
			polls.POST("", feedHandler.CreatePoll)
			polls.GET("/:id", feedHandler.GetPoll)
			polls.POST("/:id/votes", feedHandler.Vote)
		}
	}
}
