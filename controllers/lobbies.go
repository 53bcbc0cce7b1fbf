package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"teamup/apperrors"
	"teamup/dto"
	"teamup/middleware"
	models "teamup/models/postgres"
	"teamup/store"
	"teamup/validate"

	"github.com/gin-gonic/gin"
)

// lobbyReadError maps store sentinels from lobby lookups into the
// error taxonomy.
func lobbyReadError(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.New(apperrors.NotFound, "Lobby not found")
	}
	return err
}

// @Summary Lists all existing lobbies
// @Description Returns the lobbies matching the optional query filters
// @Tags lobbies
// @Produce json
// @Param game query string false "Substring of the game name"
// @Param platform query string false "Exact platform"
// @Param min_skill query int false "Minimum skill level"
// @Param max_skill query int false "Maximum skill level"
// @Param has_slots query bool false "Only lobbies with open slots"
// @Success 200 {object} dto.LobbyListPayload
// @Failure 500 {object} object{error=string}
// @Router /api/lobbies [get]
func GetAllLobbies(lobbies store.LobbyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := store.LobbyFilter{
			Game:     c.Query("game"),
			Platform: c.Query("platform"),
		}
		filter.MinSkill, _ = strconv.Atoi(c.Query("min_skill"))
		filter.MaxSkill, _ = strconv.Atoi(c.Query("max_skill"))
		filter.HasSlots = c.Query("has_slots") == "true"

		found, err := lobbies.List(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err)
			return
		}

		response := dto.LobbyListPayload{Lobbies: make([]dto.LobbyPayload, len(found))}
		for i := range found {
			response.Lobbies[i] = toLobbyPayload(&found[i])
		}
		c.JSON(http.StatusOK, response)
	}
}

// @Summary Gives info of a lobby
// @Description Given a lobby id, it will return its information
// @Tags lobbies
// @Produce json
// @Param lobby_id path string true "Id of the lobby wanted"
// @Success 200 {object} dto.LobbyPayload
// @Failure 404 {object} object{error=string}
// @Router /api/lobbies/{lobby_id} [get]
func GetLobbyInfo(lobbies store.LobbyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		lobby, err := lobbies.ByID(c.Request.Context(), c.Param("lobby_id"))
		if err != nil {
			respondError(c, lobbyReadError(err))
			return
		}
		c.JSON(http.StatusOK, toLobbyPayload(lobby))
	}
}

// @Summary Creates a new lobby
// @Description The creator automatically occupies the first slot
// @Tags lobbies
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 201 {object} dto.LobbyPayload
// @Failure 400 {object} object{errors=object}
// @Failure 404 {object} object{error=string}
// @Router /api/lobbies [post]
// @Security ApiKeyAuth
func CreateLobby(lobbies store.LobbyStore, games store.GameStore, users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload dto.LobbyWritePayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			respondError(c, apperrors.New(apperrors.Validation, "Invalid request body"))
			return
		}
		if errs := validate.LobbyWrite(payload); len(errs) > 0 {
			respondError(c, apperrors.NewValidation(errs))
			return
		}
		if _, err := games.ByID(c.Request.Context(), payload.GameID); err != nil {
			respondError(c, apperrors.New(apperrors.NotFound, "Game not found"))
			return
		}

		author, err := users.ByID(c.Request.Context(), c.GetString(middleware.ContextUserID))
		if err != nil {
			respondError(c, apperrors.New(apperrors.AuthRequired, "User not found"))
			return
		}

		lobby := models.Lobby{
			Name:        payload.Name,
			GameID:      payload.GameID,
			Platform:    payload.Platform,
			Slots:       payload.Slots,
			SkillLevel:  payload.SkillLevel,
			Goal:        payload.Goal,
			Description: payload.Description,
			StartTime:   payload.StartTime,
			AuthorID:    author.ID,
			Members:     []*models.User{author},
		}
		if err := lobbies.Create(c.Request.Context(), &lobby); err != nil {
			respondError(c, err)
			return
		}

		created, err := lobbies.ByID(c.Request.Context(), lobby.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, toLobbyPayload(created))
	}
}

// @Summary Inserts the authenticated user into a lobby
// @Tags lobbies
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param lobby_id path string true "lobby_id"
// @Success 200 {object} dto.LobbyPayload
// @Failure 404 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /api/lobbies/{lobby_id}/join [post]
// @Security ApiKeyAuth
func JoinLobby(lobbies store.LobbyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		lobbyID := c.Param("lobby_id")
		userID := c.GetString(middleware.ContextUserID)

		err := lobbies.AddMember(c.Request.Context(), lobbyID, userID)
		switch {
		case errors.Is(err, store.ErrLobbyFull):
			respondError(c, apperrors.New(apperrors.Conflict, "Lobby is full"))
			return
		case errors.Is(err, store.ErrAlreadyMember):
			respondError(c, apperrors.New(apperrors.Conflict, "You already joined this lobby"))
			return
		case err != nil:
			respondError(c, lobbyReadError(err))
			return
		}

		lobby, err := lobbies.ByID(c.Request.Context(), lobbyID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toLobbyPayload(lobby))
	}
}

// @Summary Removes the authenticated user from a lobby
// @Description The creator cannot leave its own lobby, only delete it
// @Tags lobbies
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param lobby_id path string true "lobby_id"
// @Success 200 {object} dto.LobbyPayload
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /api/lobbies/{lobby_id}/leave [post]
// @Security ApiKeyAuth
func LeaveLobby(lobbies store.LobbyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		lobbyID := c.Param("lobby_id")
		userID := c.GetString(middleware.ContextUserID)

		lobby, err := lobbies.ByID(c.Request.Context(), lobbyID)
		if err != nil {
			respondError(c, lobbyReadError(err))
			return
		}
		if lobby.AuthorID == userID {
			respondError(c, apperrors.New(apperrors.Forbidden, "The creator cannot leave the lobby"))
			return
		}

		err = lobbies.RemoveMember(c.Request.Context(), lobbyID, userID)
		switch {
		case errors.Is(err, store.ErrNotMember):
			respondError(c, apperrors.New(apperrors.Conflict, "You are not in this lobby"))
			return
		case err != nil:
			respondError(c, lobbyReadError(err))
			return
		}

		lobby, err = lobbies.ByID(c.Request.Context(), lobbyID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toLobbyPayload(lobby))
	}
}

// @Summary Deletes a lobby
// @Description Only the creator can delete its lobby
// @Tags lobbies
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param lobby_id path string true "lobby_id"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /api/lobbies/{lobby_id} [delete]
// @Security ApiKeyAuth
func DeleteLobby(lobbies store.LobbyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		lobbyID := c.Param("lobby_id")

		lobby, err := lobbies.ByID(c.Request.Context(), lobbyID)
		if err != nil {
			respondError(c, lobbyReadError(err))
			return
		}
		if lobby.AuthorID != c.GetString(middleware.ContextUserID) {
			respondError(c, apperrors.New(apperrors.Forbidden, "Only the creator can delete the lobby"))
			return
		}

		if err := lobbies.Delete(c.Request.Context(), lobbyID); err != nil {
			respondError(c, lobbyReadError(err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Lobby deleted successfully"})
	}
}
