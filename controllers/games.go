package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"teamup/dto"
	models "teamup/models/postgres"
	"teamup/store"
	"teamup/validate"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

// @Summary Lists all known games
// @Tags games
// @Produce json
// @Success 200 {object} dto.GameListPayload
// @Failure 500 {object} object{error=string}
// @Router /api/games [get]
func GetAllGames(games store.GameStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		found, err := games.List(c.Request.Context())
		if err != nil {
			log.Printf("Error listing games: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing games"})
			return
		}

		response := dto.GameListPayload{Games: make([]dto.GamePayload, len(found))}
		for i := range found {
			response.Games[i] = toGamePayload(&found[i])
		}
		c.JSON(http.StatusOK, response)
	}
}

// @Summary Creates a game
// @Description Games are created on demand when a user picks an unknown title. Creating an existing name returns the known game.
// @Tags games
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {object} dto.GamePayload
// @Success 201 {object} dto.GamePayload
// @Failure 400 {object} object{errors=object}
// @Router /api/games [post]
// @Security ApiKeyAuth
func CreateGame(games store.GameStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload dto.GameWritePayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if msg := validate.Required(payload.Name, "Game name is required"); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"name": msg}})
			return
		}

		releaseDate := time.Now()
		if payload.ReleaseDate != "" {
			parsed, err := time.Parse("2006-01-02", payload.ReleaseDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"release_date": "Release date must be YYYY-MM-DD"}})
				return
			}
			releaseDate = parsed
		}

		game := models.Game{
			Name:        payload.Name,
			Description: payload.Description,
			ReleaseDate: datatypes.Date(releaseDate),
			URLImage:    payload.URLImage,
		}
		err := games.Create(c.Request.Context(), &game)
		if errors.Is(err, store.ErrDuplicate) {
			existing, err := games.ByName(c.Request.Context(), payload.Name)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reading game"})
				return
			}
			c.JSON(http.StatusOK, toGamePayload(existing))
			return
		}
		if err != nil {
			log.Printf("Error creating game: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating game"})
			return
		}
		c.JSON(http.StatusCreated, toGamePayload(&game))
	}
}
