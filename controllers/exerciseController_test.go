package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"golang-exercisetracker/models"
	"golang-exercisetracker/repository"
)

type exerciseFixture struct {
	router    *gin.Engine
	users     *repository.InMemoryUserRepository
	exercises *repository.InMemoryExerciseRepository
}

func setupExerciseRouter(t *testing.T) exerciseFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := repository.NewInMemoryUserRepository()
	exercises := repository.NewInMemoryExerciseRepository()
	exerciseController := NewExerciseController(users, exercises, time.Second)

	router := gin.New()
	router.POST("/api/users/:user_id/exercises", exerciseController.AddExercise())
	router.GET("/api/users/:user_id/logs", exerciseController.GetLogs())
	return exerciseFixture{router: router, users: users, exercises: exercises}
}

func (f exerciseFixture) seedUser(t *testing.T, username string) models.User {
	t.Helper()
	user := models.User{ID: primitive.NewObjectID(), Username: username}
	require.NoError(t, f.users.Insert(context.Background(), user))
	return user
}

func (f exerciseFixture) seedExercise(t *testing.T, userID, description, date string, duration int) {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	require.NoError(t, f.exercises.Insert(context.Background(), models.Exercise{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		Description: description,
		Duration:    duration,
		Date:        parsed.UTC(),
	}))
}

func (f exerciseFixture) getLogs(t *testing.T, userID, query string) (*httptest.ResponseRecorder, models.LogResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/users/"+userID+"/logs"+query, nil)
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)

	var resp models.LogResponse
	if rr.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	}
	return rr, resp
}

func TestAddExerciseUnknownUser(t *testing.T) {
	f := setupExerciseRouter(t)

	rr := postForm(f.router, "/api/users/"+primitive.NewObjectID().Hex()+"/exercises",
		url.Values{"description": {"run"}, "duration": {"30"}})
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.JSONEq(t, `{"error":"User not found"}`, rr.Body.String())

	stored, err := f.exercises.FindByUser(context.Background(), "", nil, nil, 0)
	require.NoError(t, err)
	require.Empty(t, stored)
}

func TestAddExerciseMalformedUserIDTreatedAsNotFound(t *testing.T) {
	f := setupExerciseRouter(t)

	rr := postForm(f.router, "/api/users/not-an-object-id/exercises",
		url.Values{"description": {"run"}, "duration": {"30"}})
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAddExerciseDefaultsToCurrentDate(t *testing.T) {
	f := setupExerciseRouter(t)
	user := f.seedUser(t, "alice")

	rr := postForm(f.router, "/api/users/"+user.ID.Hex()+"/exercises",
		url.Values{"description": {"run"}, "duration": {"30"}})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp models.ExerciseResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, user.ID.Hex(), resp.ID)
	require.Equal(t, "alice", resp.Username)
	require.Equal(t, "run", resp.Description)
	require.Equal(t, 30, resp.Duration)
	require.Equal(t, time.Now().UTC().Format(models.DateLayout), resp.Date)
}

func TestAddExerciseFormatsSuppliedDate(t *testing.T) {
	f := setupExerciseRouter(t)
	user := f.seedUser(t, "alice")

	rr := postForm(f.router, "/api/users/"+user.ID.Hex()+"/exercises",
		url.Values{"description": {"swim"}, "duration": {"45"}, "date": {"2024-01-10"}})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp models.ExerciseResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "Wed Jan 10 2024", resp.Date)
}

func TestAddExerciseDurationRoundTrip(t *testing.T) {
	f := setupExerciseRouter(t)
	user := f.seedUser(t, "alice")

	for _, input := range []string{"1", "42", "090", "  15 ", "-5"} {
		rr := postForm(f.router, "/api/users/"+user.ID.Hex()+"/exercises",
			url.Values{"description": {"row"}, "duration": {input}})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		var resp models.ExerciseResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		want, err := strconv.Atoi(strings.TrimSpace(input))
		require.NoError(t, err)
		require.Equal(t, want, resp.Duration)
	}
}

func TestAddExerciseRejectsNonIntegerDuration(t *testing.T) {
	f := setupExerciseRouter(t)
	user := f.seedUser(t, "alice")

	rr := postForm(f.router, "/api/users/"+user.ID.Hex()+"/exercises",
		url.Values{"description": {"run"}, "duration": {"half an hour"}})
	require.Equal(t, http.StatusBadRequest, rr.Code)

	stored, err := f.exercises.FindByUser(context.Background(), user.ID.Hex(), nil, nil, 0)
	require.NoError(t, err)
	require.Empty(t, stored)
}

func TestAddExerciseRejectsUnparseableDate(t *testing.T) {
	f := setupExerciseRouter(t)
	user := f.seedUser(t, "alice")

	rr := postForm(f.router, "/api/users/"+user.ID.Hex()+"/exercises",
		url.Values{"description": {"run"}, "duration": {"30"}, "date": {"next tuesday"}})
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAddExerciseMissingRequiredFields(t *testing.T) {
	f := setupExerciseRouter(t)
	user := f.seedUser(t, "alice")

	rr := postForm(f.router, "/api/users/"+user.ID.Hex()+"/exercises",
		url.Values{"description": {"run"}})
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetLogsUnknownUser(t *testing.T) {
	f := setupExerciseRouter(t)

	rr, _ := f.getLogs(t, primitive.NewObjectID().Hex(), "")
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.JSONEq(t, `{"error":"User not found"}`, rr.Body.String())
}

func TestGetLogsDateWindow(t *testing.T) {
	f := setupExerciseRouter(t)
	user := f.seedUser(t, "alice")
	f.seedExercise(t, user.ID.Hex(), "run", "2024-01-01", 10)
	f.seedExercise(t, user.ID.Hex(), "swim", "2024-01-10", 20)
	f.seedExercise(t, user.ID.Hex(), "row", "2024-01-20", 30)

	rr, resp := f.getLogs(t, user.ID.Hex(), "?from=2024-01-05&to=2024-01-15")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.Equal(t, 1, resp.Count)
	require.Len(t, resp.Log, 1)
	require.Equal(t, "swim", resp.Log[0].Description)
	require.Equal(t, "Wed Jan 10 2024", resp.Log[0].Date)
}

func TestGetLogsBoundsAreInclusive(t *testing.T) {
	f := setupExerciseRouter(t)
	user := f.seedUser(t, "alice")
	f.seedExercise(t, user.ID.Hex(), "run", "2024-01-01", 10)
	f.seedExercise(t, user.ID.Hex(), "row", "2024-01-20", 30)

	rr, resp := f.getLogs(t, user.ID.Hex(), "?from=2024-01-01&to=2024-01-20")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, 2, resp.Count)
}

func TestGetLogsLimit(t *testing.T) {
	f := setupExerciseRouter(t)
	user := f.seedUser(t, "alice")
	for day, description := range map[string]string{
		"2024-03-05": "run",
		"2024-03-01": "swim",
		"2024-03-04": "row",
		"2024-03-02": "lift",
		"2024-03-03": "walk",
	} {
		f.seedExercise(t, user.ID.Hex(), description, day, 30)
	}

	rr, resp := f.getLogs(t, user.ID.Hex(), "?limit=2")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, 2, resp.Count)
	require.Len(t, resp.Log, 2)
	require.Equal(t, "swim", resp.Log[0].Description)
	require.Equal(t, "lift", resp.Log[1].Description)
}

func TestGetLogsSortedAscendingByDate(t *testing.T) {
	f := setupExerciseRouter(t)
	user := f.seedUser(t, "alice")
	f.seedExercise(t, user.ID.Hex(), "row", "2024-06-20", 30)
	f.seedExercise(t, user.ID.Hex(), "run", "2024-06-01", 10)
	f.seedExercise(t, user.ID.Hex(), "swim", "2024-06-10", 20)

	rr, resp := f.getLogs(t, user.ID.Hex(), "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, []string{"run", "swim", "row"}, []string{
		resp.Log[0].Description, resp.Log[1].Description, resp.Log[2].Description,
	})
}

func TestGetLogsEmptyLogIsAnArray(t *testing.T) {
	f := setupExerciseRouter(t)
	user := f.seedUser(t, "alice")

	rr, resp := f.getLogs(t, user.ID.Hex(), "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, 0, resp.Count)
	require.Contains(t, rr.Body.String(), `"log":[]`)
}

func TestGetLogsIgnoresInvalidLimit(t *testing.T) {
	f := setupExerciseRouter(t)
	user := f.seedUser(t, "alice")
	f.seedExercise(t, user.ID.Hex(), "run", "2024-06-01", 10)
	f.seedExercise(t, user.ID.Hex(), "swim", "2024-06-10", 20)

	rr, resp := f.getLogs(t, user.ID.Hex(), "?limit=zero")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, 2, resp.Count)
}

func TestGetLogsDoesNotReturnOtherUsersExercises(t *testing.T) {
	f := setupExerciseRouter(t)
	alice := f.seedUser(t, "alice")
	bob := f.seedUser(t, "bob")
	f.seedExercise(t, alice.ID.Hex(), "run", "2024-06-01", 10)
	f.seedExercise(t, bob.ID.Hex(), "swim", "2024-06-02", 20)

	rr, resp := f.getLogs(t, alice.ID.Hex(), "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, 1, resp.Count)
	require.Equal(t, "run", resp.Log[0].Description)
}
