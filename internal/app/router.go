package app

import (
	"circlenet_backend/docs"
	"circlenet_backend/internal/config"
	"circlenet_backend/internal/middleware"
	"circlenet_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/settings/public", c.user.PublicSettings)

		// Readable by whoever holds the link, before they have an account
		// session worth authenticating.
		public.GET("/invitations/:id", c.invitation.GetInvitation)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.JWTAuth(cfg.JWT.Secret))
	{
		authGroup.GET("/profile", c.user.GetProfile)
		authGroup.PUT("/profile", c.user.UpdateProfile)
		authGroup.POST("/profile/avatar", c.user.UploadAvatar)
		authGroup.GET("/profile/avatar/crop", c.user.AvatarCrop)
		authGroup.PUT("/settings", c.user.UpdateSettings)
		authGroup.GET("/users", c.user.SearchUsers)
		authGroup.GET("/users/:id", c.user.ViewUser)
		authGroup.GET("/users/:id/posts", c.post.FeedFor)

		authGroup.GET("/circles", c.circle.ListCircles)
		authGroup.POST("/circles", c.circle.CreateCircle)
		authGroup.GET("/circles/:id", c.circle.GetCircle)
		authGroup.PUT("/circles/:id", c.circle.UpdateCircle)
		authGroup.DELETE("/circles/:id", c.circle.DeleteCircle)
		authGroup.GET("/circles/:id/members", c.circle.ListMembers)
		authGroup.POST("/circles/:id/members", c.circle.AddMember)
		authGroup.DELETE("/circles/:id/members/:connectionId", c.circle.RemoveMember)

		authGroup.GET("/connections", c.connection.ListConnections)
		authGroup.GET("/connections/:id", c.connection.GetConnection)
		authGroup.DELETE("/connections/:id", c.connection.DeleteConnection)
		authGroup.PUT("/connections/:id/circles", c.connection.SetCircles)
		authGroup.POST("/connections/:id/messages", c.message.SendOnConnection)

		authGroup.GET("/invitations", c.invitation.ListInvitations)
		authGroup.POST("/invitations", c.invitation.CreateInvitation)
		authGroup.DELETE("/invitations/:id", c.invitation.RevokeInvitation)
		authGroup.POST("/invitations/:id/accept", c.invitation.AcceptInvitation)

		authGroup.GET("/intros", c.intro.ListOpenIntros)
		authGroup.POST("/intros", c.intro.CreateIntro)
		authGroup.POST("/intros/:id/accept", c.intro.AcceptIntro)

		authGroup.GET("/posts", c.post.ListOwnPosts)
		authGroup.POST("/posts", c.post.CreatePost)
		authGroup.GET("/posts/:id", c.post.GetPost)
		authGroup.DELETE("/posts/:id", c.post.DeletePost)
		authGroup.POST("/posts/:id/publish", c.post.PublishPost)
		authGroup.GET("/posts/:id/circles", c.post.PostCircles)
		authGroup.DELETE("/posts/:id/circles/:circleId", c.post.UnpublishPost)

		authGroup.GET("/feed", c.post.Feed)
		authGroup.GET("/feed/:userId", c.post.FeedFor)

		authGroup.POST("/messages", c.message.SendMessage)
		authGroup.GET("/convos", c.message.ListConvos)
		authGroup.GET("/convos/:id", c.message.GetConversation)
		authGroup.POST("/convos/:id/read", c.message.MarkConversationRead)
	}
}
