package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DateLayout renders dates the way the exercise log responses expect
// them: day-of-week, month, zero-padded day, year, no time of day.
const DateLayout = "Mon Jan 02 2006"

type Exercise struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	UserID      string             `json:"userId" bson:"userId" validate:"required"`
	Description string             `json:"description" bson:"description" validate:"required"`
	Duration    int                `json:"duration" bson:"duration"`
	Date        time.Time          `json:"date" bson:"date"`
}

// ExerciseResponse is the body returned after logging an exercise.
type ExerciseResponse struct {
	ID          string `json:"_id"`
	Username    string `json:"username"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogEntry is one element of the log array in LogResponse.
type LogEntry struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogResponse is the body returned by the exercise log query. Count is
// the number of entries actually returned after filtering and limiting.
type LogResponse struct {
	ID       string     `json:"_id"`
	Username string     `json:"username"`
	Count    int        `json:"count"`
	Log      []LogEntry `json:"log"`
}
