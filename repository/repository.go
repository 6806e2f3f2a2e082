package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"golang-exercisetracker/models"
)

// ErrNotFound is returned when a lookup matches no document. It is the
// only repository error callers are expected to branch on.
var ErrNotFound = errors.New("document not found")

type UserRepository interface {
	Insert(ctx context.Context, user models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	All(ctx context.Context) ([]models.User, error)
}

// ExerciseRepository persists exercise log entries. FindByUser applies
// each date bound only when non-nil, returns entries sorted ascending
// by date, and truncates to limit when limit > 0.
type ExerciseRepository interface {
	Insert(ctx context.Context, exercise models.Exercise) error
	FindByUser(ctx context.Context, userID string, from, to *time.Time, limit int64) ([]models.Exercise, error)
}
