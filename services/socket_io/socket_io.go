package socket_io

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"teamup/middleware"
	"teamup/services/redis"
	"teamup/services/socket_io/handlers"
	socketio_types "teamup/services/socket_io/types"
	"teamup/store"

	"gorm.io/gorm"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

type MySocketServer socketio_types.SocketServer

// Start mounts the socket.io endpoint on the gin router and registers
// the lobby channel handlers for every authenticated connection.
func (sio *MySocketServer) Start(router *gin.Engine, db *gorm.DB, redisClient *redis.RedisClient) {
	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	// Higher ping interval and timeout to reduce network load and
	// support slower networks
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	c.SetMaxHttpBufferSize(1000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})

	sio.UserConnections = make(map[string]*socket.Socket)

	lobbies := store.NewLobbyStore(db)

	sio.Sio_server = socket.NewServer(nil, nil)
	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)

		// Check if the client is authenticated
		session, ok := verifyConnection(client, redisClient)
		if !ok {
			return
		}

		(*socketio_types.SocketServer)(sio).AddConnection(session.Username, client)
		log.Printf("Client connected: %s", session.Username)

		// Join the room corresponding to a lobby the user is a member of
		client.On("join_lobby", handlers.HandleJoinLobby(lobbies, client, session.UserID, session.Username))

		// Exit a lobby room voluntarily
		client.On("exit_lobby", handlers.HandleExitLobby(client, session.Username))

		// Broadcast a message to all clients in a specific lobby
		client.On("broadcast_to_lobby", handlers.BroadcastMessageToLobby(
			(*socketio_types.SocketServer)(sio), lobbies, client, session.UserID, session.Username))

		client.On("disconnecting", handlers.HandleDisconnecting(
			(*socketio_types.SocketServer)(sio), session.Username))
	})

	router.POST("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))
	router.GET("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))

	signalC := make(chan os.Signal, 1)
	signal.Notify(signalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range signalC {
			switch s {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				sio.Sio_server.Close(nil)
				os.Exit(0)
			}
		}
	}()

	log.Println("Socket server started")
}

// verifyConnection authenticates a socket.io client from the JWT it
// supplied in the handshake auth data.
func verifyConnection(client *socket.Socket, sessions redis.Sessions) (*redis.Session, bool) {
	authData, ok := client.Handshake().Auth.(map[string]interface{})
	if !ok {
		client.Emit("error", gin.H{"error": "Authentication failed: missing auth data"})
		return nil, false
	}

	token, exists := authData["authorization"].(string)
	if !exists {
		client.Emit("error", gin.H{"error": "Authentication failed: missing authorization token"})
		return nil, false
	}
	token = strings.TrimPrefix(token, "Bearer ")

	userID, tokenID, err := middleware.DecodeToken(token)
	if err != nil {
		client.Emit("error", gin.H{
			"error": "Authentication failed: invalid JWT. Remember to set it on the 'authorization' field and with the 'Bearer ' prefix.",
		})
		return nil, false
	}

	session, err := sessions.GetSession(tokenID)
	if err != nil || session == nil || session.UserID != userID {
		client.Emit("error", gin.H{"error": "Authentication failed: session expired"})
		return nil, false
	}
	return session, true
}
