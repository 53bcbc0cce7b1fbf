package routes

import (
	"teamup/controllers"
	"teamup/middleware"
	"teamup/services/redis"
	"teamup/store"
	utils "teamup/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, redisClient *redis.RedisClient) {
	// Create the persistence ports handlers depend on
	users := store.NewUserStore(db)
	games := store.NewGameStore(db)
	lobbies := store.NewLobbyStore(db)
	bids := store.NewBidStore(db)

	// utils global
	router.Use(utils.Logger())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes group
	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	api.POST("/api/users/signup", controllers.SignUp(users, redisClient))
	api.POST("/api/users/login", controllers.Login(users, redisClient))
	api.GET("/api/users/:user_id", controllers.GetUserPublicInfo(users))

	api.GET("/api/games", controllers.GetAllGames(games))

	api.GET("/api/lobbies", controllers.GetAllLobbies(lobbies))
	api.GET("/api/lobbies/:lobby_id", controllers.GetLobbyInfo(lobbies))

	api.GET("/api/bids", controllers.GetAllBids(bids))
	api.GET("/api/bids/:bid_id", controllers.GetBidInfo(bids))

	authentication := api.Group("/auth")
	authentication.Use(middleware.AuthRequired(redisClient))
	{
		authentication.DELETE("/logout", controllers.Logout(redisClient))

		authentication.GET("/me", controllers.GetUserPrivateInfo(users))
	}

	// Write operations require authentication
	protected := api.Group("/api")
	protected.Use(middleware.AuthRequired(redisClient))
	{
		protected.PATCH("/users/:user_id", controllers.UpdateUserInfo(users))

		protected.POST("/games", controllers.CreateGame(games))

		protected.POST("/lobbies", controllers.CreateLobby(lobbies, games, users))
		protected.POST("/lobbies/:lobby_id/join", controllers.JoinLobby(lobbies))
		protected.POST("/lobbies/:lobby_id/leave", controllers.LeaveLobby(lobbies))
		protected.DELETE("/lobbies/:lobby_id", controllers.DeleteLobby(lobbies))

		protected.POST("/bids", controllers.CreateBid(bids, games))
		protected.DELETE("/bids/:bid_id", controllers.DeleteBid(bids))
	}
}
