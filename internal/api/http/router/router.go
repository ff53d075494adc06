// Package router assembles the gin engine: middleware chain, versioned
// REST routes and the websocket endpoint.
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/parleychat/parley-server/internal/api/http/handler"
	"github.com/parleychat/parley-server/internal/api/http/middleware"
	"github.com/parleychat/parley-server/internal/logger"
	"github.com/parleychat/parley-server/internal/model"
	"github.com/parleychat/parley-server/internal/service"
)

// Router wires services into HTTP handlers.
type Router struct {
	authService    *service.Auth
	userService    *service.User
	roomService    *service.ChatRoom
	messageService *service.Message
	tokenService   *service.TokenService
	userStore      model.UserStore
	registry       handler.Registry
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	authService *service.Auth,
	userService *service.User,
	roomService *service.ChatRoom,
	messageService *service.Message,
	tokenService *service.TokenService,
	userStore model.UserStore,
	registry handler.Registry,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		userService:    userService,
		roomService:    roomService,
		messageService: messageService,
		tokenService:   tokenService,
		userStore:      userStore,
		registry:       registry,
		logger:         logger,
	}
}

// Register builds the gin engine with all routes and middleware.
func (r *Router) Register() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.NewLogging(r.logger).Handle)
	engine.Use(cors.Default())

	authenticate := middleware.NewAuthenticate(r.tokenService, r.userStore, r.logger)

	authHandler := handler.NewAuth(r.authService, r.logger)
	userHandler := handler.NewUser(r.userService, r.logger)
	roomHandler := handler.NewChatRoom(r.roomService, r.logger)
	messageHandler := handler.NewMessage(r.messageService, r.logger)
	wsHandler := handler.NewWS(r.tokenService, r.roomService, r.messageService, r.registry, r.logger)

	v1 := engine.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.GET("/access_token", authHandler.AccessToken)
		auth.GET("/me", authenticate.Handle, authHandler.Me)
		// Logout validates the bearer token itself so a repeat logout
		// answers 410 instead of a middleware rejection.
		auth.POST("/logout", authHandler.Logout)
	}

	users := v1.Group("/users", authenticate.Handle)
	{
		users.GET("", userHandler.List)
		users.PUT("/me/avatar", userHandler.SetAvatar)
		users.GET("/:id", userHandler.Get)
		users.PATCH("/:id", userHandler.Update)
		users.DELETE("/:id", userHandler.Delete)
		users.GET("/:id/avatar", userHandler.GetAvatar)
	}

	rooms := v1.Group("/chatrooms", authenticate.Handle)
	{
		rooms.POST("", roomHandler.Create)
		rooms.GET("", roomHandler.List)
		rooms.GET("/:id", roomHandler.Get)
		rooms.DELETE("/:id", roomHandler.Delete)
		rooms.POST("/:id/members", roomHandler.Join)
		rooms.GET("/:id/members", roomHandler.Members)
		rooms.DELETE("/:id/members/me", roomHandler.Leave)
		rooms.POST("/:id/messages", messageHandler.Send)
		rooms.GET("/:id/messages", messageHandler.List)
	}

	messages := v1.Group("/messages", authenticate.Handle)
	{
		messages.PATCH("/:id", messageHandler.Edit)
		messages.DELETE("/:id", messageHandler.Delete)
	}

	v1.POST("/dms/:receiver_id", authenticate.Handle, roomHandler.OpenDirectMessage)

	// The websocket endpoint authenticates after the upgrade so failures
	// surface as close code 1008 instead of an HTTP status.
	v1.GET("/ws/chatrooms/:id", wsHandler.Serve)

	return engine
}
