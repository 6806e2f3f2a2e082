package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"golang-exercisetracker/models"
	"golang-exercisetracker/repository"
)

var validate = validator.New()

type UserController struct {
	users   repository.UserRepository
	timeout time.Duration
}

func NewUserController(users repository.UserRepository, timeout time.Duration) *UserController {
	return &UserController{users: users, timeout: timeout}
}

type createUserRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
}

func (uc *UserController) CreateUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), uc.timeout)
		defer cancel()

		var req createUserRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		if err := validate.Struct(req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username is required"})
			return
		}

		// Creating a username that already exists returns the original
		// record instead of inserting a duplicate.
		existing, err := uc.users.FindByUsername(ctx, req.Username)
		if err == nil {
			c.JSON(http.StatusOK, gin.H{"username": existing.Username, "_id": existing.ID.Hex()})
			return
		}
		if !errors.Is(err, repository.ErrNotFound) {
			log.Error().Err(err).Str("username", req.Username).Msg("user lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}

		user := models.User{
			ID:       primitive.NewObjectID(),
			Username: req.Username,
		}

		if err := uc.users.Insert(ctx, user); err != nil {
			log.Error().Err(err).Str("username", req.Username).Msg("user insert failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"username": user.Username, "_id": user.ID.Hex()})
	}
}

func (uc *UserController) GetUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), uc.timeout)
		defer cancel()

		users, err := uc.users.All(ctx)
		if err != nil {
			log.Error().Err(err).Msg("user listing failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}

		response := make([]gin.H, 0, len(users))
		for _, user := range users {
			response = append(response, gin.H{"username": user.Username, "_id": user.ID.Hex()})
		}

		c.JSON(http.StatusOK, response)
	}
}
