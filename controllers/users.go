package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"teamup/dto"
	"teamup/middleware"
	models "teamup/models/postgres"
	redis "teamup/services/redis"
	"teamup/store"
	"teamup/validate"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// @Summary Registers a new user
// @Description Validates the registration payload, creates the user and returns its record with a bearer token
// @Tags users
// @Accept json
// @Produce json
// @Success 201 {object} dto.UserPayload
// @Failure 400 {object} object{errors=object}
// @Failure 409 {object} object{error=string}
// @Router /api/users/signup [post]
func SignUp(users store.UserStore, sessions redis.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload dto.SignupPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		if errs := validate.Signup(payload); len(errs) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error hashing password"})
			return
		}

		user := models.User{
			Username:        payload.Username,
			PasswordHash:    string(hash),
			Gender:          payload.Gender,
			Bio:             deref(payload.Bio),
			Avatar:          payload.Avatar,
			TelegramContact: payload.TelegramContact,
			DiscordContact:  payload.DiscordContact,
			SteamContact:    payload.SteamContact,
		}
		if err := users.Create(c.Request.Context(), &user); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				c.JSON(http.StatusConflict, gin.H{"error": "User with this username already exists"})
				return
			}
			log.Printf("Error creating user: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating user"})
			return
		}

		response := toUserPayload(&user)
		response.Token, err = openSession(&user, sessions)
		if err != nil {
			log.Printf("Error opening session: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating session"})
			return
		}
		c.JSON(http.StatusCreated, response)
	}
}

// @Summary Creates an authorization token from username and password
// @Description Returns the authenticated user's record with a bearer token
// @Tags users
// @Accept json
// @Produce json
// @Success 200 {object} dto.UserPayload
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Router /api/users/login [post]
func Login(users store.UserStore, sessionStore redis.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload dto.LoginPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		// Minimum input sanitizing
		if strings.TrimSpace(payload.Username) == "" || strings.TrimSpace(payload.Password) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parameters can't be empty"})
			return
		}

		user, err := users.ByUsername(c.Request.Context(), payload.Username)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password!"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password!"})
			return
		}

		response := toUserPayload(user)
		response.Token, err = openSession(user, sessionStore)
		if err != nil {
			log.Printf("Error opening session: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating session"})
			return
		}

		// Keep the cookie session in step for browser clients.
		session := sessions.Default(c)
		session.Set("UserID", user.ID)
		if err := session.Save(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
			return
		}
		c.JSON(http.StatusOK, response)
	}
}

// @Summary Logout from server
// @Description Revokes the bearer token and deletes the cookie session
// @Tags users
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {object} object{message=string}
// @Router /auth/logout [delete]
// @Security ApiKeyAuth
func Logout(sessionStore redis.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenID := c.GetString(middleware.ContextTokenID)
		if err := sessionStore.DeleteSession(tokenID); err != nil {
			log.Printf("Error revoking session: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revoke session"})
			return
		}

		session := sessions.Default(c)
		session.Delete("UserID")
		if err := session.Save(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
	}
}

// @Summary Gives public info of a user
// @Description Given a user id, returns its public record
// @Tags users
// @Produce json
// @Param user_id path string true "Id of the user wanted"
// @Success 200 {object} dto.UserPayload
// @Failure 404 {object} object{error=string}
// @Router /api/users/{user_id} [get]
func GetUserPublicInfo(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := users.ByID(c.Request.Context(), c.Param("user_id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error querying user"})
			return
		}
		c.JSON(http.StatusOK, toUserPayload(user))
	}
}

// @Summary Gives the authenticated user's own record
// @Tags users
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {object} dto.UserPayload
// @Failure 401 {object} object{error=string}
// @Router /auth/me [get]
// @Security ApiKeyAuth
func GetUserPrivateInfo(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := users.ByID(c.Request.Context(), c.GetString(middleware.ContextUserID))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, toUserPayload(user))
	}
}

// @Summary Updates the authenticated user's profile
// @Description Replaces bio, avatar and contact handles; explicit nulls clear them
// @Tags users
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param user_id path string true "Id of the user to update"
// @Success 200 {object} dto.UserPayload
// @Failure 400 {object} object{errors=object}
// @Failure 403 {object} object{error=string}
// @Router /api/users/{user_id} [patch]
// @Security ApiKeyAuth
func UpdateUserInfo(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Param("user_id") != c.GetString(middleware.ContextUserID) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only update your own profile"})
			return
		}

		var payload dto.UserUpdatePayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if msg := validate.AvatarURL(deref(payload.Avatar)); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"avatar": msg}})
			return
		}

		user, err := users.ByID(c.Request.Context(), c.GetString(middleware.ContextUserID))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		user.Bio = deref(payload.Bio)
		user.Avatar = payload.Avatar
		user.TelegramContact = payload.TelegramContact
		user.DiscordContact = payload.DiscordContact
		user.SteamContact = payload.SteamContact
		if err := users.Update(c.Request.Context(), user); err != nil {
			log.Printf("Error updating user: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating user"})
			return
		}
		c.JSON(http.StatusOK, toUserPayload(user))
	}
}

// openSession issues a bearer token and records its revocable session.
func openSession(user *models.User, sessionStore redis.Sessions) (string, error) {
	token, tokenID, err := middleware.IssueToken(user.ID, user.Username)
	if err != nil {
		return "", err
	}
	err = sessionStore.SaveSession(tokenID, &redis.Session{
		UserID:   user.ID,
		Username: user.Username,
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
