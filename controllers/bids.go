package controllers

import (
	"errors"
	"log"
	"net/http"

	"teamup/dto"
	"teamup/middleware"
	models "teamup/models/postgres"
	"teamup/store"
	"teamup/validate"

	"github.com/gin-gonic/gin"
)

// @Summary Lists teammate requests
// @Description Returns the bids matching the optional search filters
// @Tags bids
// @Produce json
// @Param description_search query string false "Substring of the description"
// @Param game_search query string false "Exact game name"
// @Param author_id query string false "Only bids by this user"
// @Success 200 {object} dto.BidListPayload
// @Failure 500 {object} object{error=string}
// @Router /api/bids [get]
func GetAllBids(bids store.BidStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := store.BidFilter{
			Description: c.Query("description_search"),
			GameName:    c.Query("game_search"),
			AuthorID:    c.Query("author_id"),
		}

		found, err := bids.List(c.Request.Context(), filter)
		if err != nil {
			log.Printf("Error listing bids: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing bids"})
			return
		}

		response := dto.BidListPayload{Bids: make([]dto.BidPayload, len(found))}
		for i := range found {
			response.Bids[i] = toBidPayload(&found[i])
		}
		c.JSON(http.StatusOK, response)
	}
}

// @Summary Gives info of a teammate request
// @Tags bids
// @Produce json
// @Param bid_id path string true "Id of the bid wanted"
// @Success 200 {object} dto.BidPayload
// @Failure 404 {object} object{error=string}
// @Router /api/bids/{bid_id} [get]
func GetBidInfo(bids store.BidStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		bid, err := bids.ByID(c.Request.Context(), c.Param("bid_id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Request does not exist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error querying bid"})
			return
		}
		c.JSON(http.StatusOK, toBidPayload(bid))
	}
}

// @Summary Creates a teammate request
// @Tags bids
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 201 {object} dto.BidPayload
// @Failure 400 {object} object{errors=object}
// @Failure 404 {object} object{error=string}
// @Router /api/bids [post]
// @Security ApiKeyAuth
func CreateBid(bids store.BidStore, games store.GameStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload dto.BidWritePayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if errs := validate.BidWrite(payload); len(errs) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
			return
		}
		if _, err := games.ByID(c.Request.Context(), payload.GameID); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}

		bid := models.Bid{
			GameID:      payload.GameID,
			Description: payload.Description,
			Details:     payload.Details,
			AuthorID:    c.GetString(middleware.ContextUserID),
		}
		if err := bids.Create(c.Request.Context(), &bid); err != nil {
			log.Printf("Error creating bid: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating bid"})
			return
		}

		created, err := bids.ByID(c.Request.Context(), bid.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reading created bid"})
			return
		}
		c.JSON(http.StatusCreated, toBidPayload(created))
	}
}

// @Summary Deletes a teammate request
// @Description Only the author can delete its bid
// @Tags bids
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param bid_id path string true "bid_id"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /api/bids/{bid_id} [delete]
// @Security ApiKeyAuth
func DeleteBid(bids store.BidStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		bidID := c.Param("bid_id")

		bid, err := bids.ByID(c.Request.Context(), bidID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Request does not exist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error querying bid"})
			return
		}
		if bid.AuthorID != c.GetString(middleware.ContextUserID) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the author can delete the request"})
			return
		}

		if err := bids.Delete(c.Request.Context(), bidID); err != nil {
			log.Printf("Error deleting bid: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting bid"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Request deleted successfully"})
	}
}
