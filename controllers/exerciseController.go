package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"golang-exercisetracker/models"
	"golang-exercisetracker/repository"
)

// Accepted layouts for caller-supplied dates. Parsed values are
// normalized to UTC midnight so range filters compare whole days.
var dateLayouts = []string{"2006-01-02", time.RFC3339, models.DateLayout}

type ExerciseController struct {
	users     repository.UserRepository
	exercises repository.ExerciseRepository
	timeout   time.Duration
}

func NewExerciseController(users repository.UserRepository, exercises repository.ExerciseRepository, timeout time.Duration) *ExerciseController {
	return &ExerciseController{users: users, exercises: exercises, timeout: timeout}
}

type addExerciseRequest struct {
	Description string `json:"description" form:"description" validate:"required"`
	Duration    string `json:"duration" form:"duration" validate:"required"`
	Date        string `json:"date" form:"date"`
}

func (ec *ExerciseController) AddExercise() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), ec.timeout)
		defer cancel()

		user, found, err := ec.lookupUser(ctx, c.Param("user_id"))
		if err != nil {
			log.Error().Err(err).Msg("user lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		var req addExerciseRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		if err := validate.Struct(req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Description and duration are required"})
			return
		}

		duration, err := strconv.Atoi(strings.TrimSpace(req.Duration))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Duration must be an integer number of minutes"})
			return
		}

		date := today()
		if req.Date != "" {
			date, err = parseDate(req.Date)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date"})
				return
			}
		}

		exercise := models.Exercise{
			ID:          primitive.NewObjectID(),
			UserID:      user.ID.Hex(),
			Description: req.Description,
			Duration:    duration,
			Date:        date,
		}

		if err := ec.exercises.Insert(ctx, exercise); err != nil {
			log.Error().Err(err).Str("user_id", user.ID.Hex()).Msg("exercise insert failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}

		c.JSON(http.StatusOK, models.ExerciseResponse{
			ID:          user.ID.Hex(),
			Username:    user.Username,
			Description: exercise.Description,
			Duration:    exercise.Duration,
			Date:        exercise.Date.Format(models.DateLayout),
		})
	}
}

func (ec *ExerciseController) GetLogs() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), ec.timeout)
		defer cancel()

		user, found, err := ec.lookupUser(ctx, c.Param("user_id"))
		if err != nil {
			log.Error().Err(err).Msg("user lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		var from, to *time.Time
		if value := c.Query("from"); value != "" {
			parsed, err := parseDate(value)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date"})
				return
			}
			from = &parsed
		}
		if value := c.Query("to"); value != "" {
			parsed, err := parseDate(value)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date"})
				return
			}
			to = &parsed
		}

		// A limit that is absent, non-numeric, or not positive leaves
		// the log untruncated.
		var limit int64
		if parsed, err := strconv.ParseInt(c.Query("limit"), 10, 64); err == nil && parsed > 0 {
			limit = parsed
		}

		exercises, err := ec.exercises.FindByUser(ctx, user.ID.Hex(), from, to, limit)
		if err != nil {
			log.Error().Err(err).Str("user_id", user.ID.Hex()).Msg("exercise log query failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}

		entries := make([]models.LogEntry, 0, len(exercises))
		for _, exercise := range exercises {
			entries = append(entries, models.LogEntry{
				Description: exercise.Description,
				Duration:    exercise.Duration,
				Date:        exercise.Date.Format(models.DateLayout),
			})
		}

		c.JSON(http.StatusOK, models.LogResponse{
			ID:       user.ID.Hex(),
			Username: user.Username,
			Count:    len(entries),
			Log:      entries,
		})
	}
}

// lookupUser resolves a path id to a user. An id that is not a valid
// ObjectID is reported the same way as a missing user.
func (ec *ExerciseController) lookupUser(ctx context.Context, id string) (models.User, bool, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, false, nil
	}

	user, err := ec.users.FindByID(ctx, objectID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.User{}, false, nil
	}
	if err != nil {
		return models.User{}, false, err
	}
	return user, true, nil
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
