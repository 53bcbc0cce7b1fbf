package handlers

import (
	"context"
	"log"

	"teamup/store"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"

	socketio_types "teamup/services/socket_io/types"
)

// isLobbyMember checks the membership relation for a connected user.
func isLobbyMember(lobbies store.LobbyStore, lobbyID, userID string) (bool, error) {
	lobby, err := lobbies.ByID(context.Background(), lobbyID)
	if err != nil {
		return false, err
	}
	for _, m := range lobby.Members {
		if m.ID == userID {
			return true, nil
		}
	}
	return false, nil
}

// HandleJoinLobby puts the client into the room of a lobby it is a
// member of, so it receives that lobby's broadcasts.
func HandleJoinLobby(lobbies store.LobbyStore, client *socket.Socket, userID, username string) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "Invalid lobby ID"})
			return
		}
		lobbyID, ok := args[0].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid lobby ID"})
			return
		}

		member, err := isLobbyMember(lobbies, lobbyID, userID)
		if err != nil {
			client.Emit("error", gin.H{"error": "Lobby does not exist"})
			return
		}
		if !member {
			client.Emit("error", gin.H{"error": "You must join the lobby before entering its channel"})
			return
		}

		client.Join(socket.Room(lobbyID))
		log.Printf("Client %s joined lobby channel %s", username, lobbyID)
		client.Emit("lobby_joined", gin.H{"lobby_id": lobbyID, "message": "Welcome to the lobby!"})
	}
}

// HandleExitLobby takes the client out of a lobby room.
func HandleExitLobby(client *socket.Socket, username string) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "Invalid lobby ID"})
			return
		}
		lobbyID, ok := args[0].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid lobby ID"})
			return
		}

		client.Leave(socket.Room(lobbyID))
		log.Printf("Client %s left lobby channel %s", username, lobbyID)
		client.Emit("lobby_left", gin.H{"lobby_id": lobbyID})
	}
}

// BroadcastMessageToLobby relays a chat message to every client in the
// lobby's room.
func BroadcastMessageToLobby(sio *socketio_types.SocketServer, lobbies store.LobbyStore, client *socket.Socket, userID, username string) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 2 {
			client.Emit("error", gin.H{"error": "Invalid message format"})
			return
		}
		lobbyID, ok := args[0].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid lobby ID"})
			return
		}
		message, ok := args[1].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid message format"})
			return
		}

		member, err := isLobbyMember(lobbies, lobbyID, userID)
		if err != nil {
			client.Emit("error", gin.H{"error": "Lobby does not exist"})
			return
		}
		if !member {
			client.Emit("error", gin.H{"error": "You must join the lobby before sending messages"})
			return
		}

		sio.Sio_server.To(socket.Room(lobbyID)).Emit("new_lobby_message", gin.H{
			"lobby_id": lobbyID,
			"username": username,
			"message":  message,
		})
	}
}

// HandleDisconnecting removes the connection from the tracking map.
func HandleDisconnecting(sio *socketio_types.SocketServer, username string) func(args ...interface{}) {
	return func(args ...interface{}) {
		sio.RemoveConnection(username)
		log.Printf("Client %s disconnected", username)
	}
}
