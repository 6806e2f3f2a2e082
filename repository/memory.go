package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"golang-exercisetracker/models"
)

// InMemoryUserRepository stores users in memory for local development
// and handler tests.
type InMemoryUserRepository struct {
	mu    sync.RWMutex
	users []models.User
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{}
}

func (r *InMemoryUserRepository) Insert(ctx context.Context, user models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, user)
	return nil
}

func (r *InMemoryUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (r *InMemoryUserRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (r *InMemoryUserRepository) All(ctx context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]models.User, len(r.users))
	copy(users, r.users)
	return users, nil
}

// InMemoryExerciseRepository stores exercises in memory, mirroring the
// filter, sort, and limit semantics of the MongoDB implementation.
type InMemoryExerciseRepository struct {
	mu        sync.RWMutex
	exercises []models.Exercise
}

func NewInMemoryExerciseRepository() *InMemoryExerciseRepository {
	return &InMemoryExerciseRepository{}
}

func (r *InMemoryExerciseRepository) Insert(ctx context.Context, exercise models.Exercise) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exercises = append(r.exercises, exercise)
	return nil
}

func (r *InMemoryExerciseRepository) FindByUser(ctx context.Context, userID string, from, to *time.Time, limit int64) ([]models.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []models.Exercise
	for _, exercise := range r.exercises {
		if exercise.UserID != userID {
			continue
		}
		if from != nil && exercise.Date.Before(*from) {
			continue
		}
		if to != nil && exercise.Date.After(*to) {
			continue
		}
		matched = append(matched, exercise)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Date.Before(matched[j].Date)
	})

	if limit > 0 && int64(len(matched)) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}
