package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"golang-exercisetracker/config"
	controller "golang-exercisetracker/controllers"
	"golang-exercisetracker/database"
	"golang-exercisetracker/middleware"
	"golang-exercisetracker/repository"
	"golang-exercisetracker/routes"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	cfg := config.Load()

	connectCtx, connectCancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := database.Connect(connectCtx, cfg.MongoURI)
	connectCancel()
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}

	users := repository.NewMongoUserRepository(database.OpenCollection(client, cfg.DatabaseName, "user"))
	exercises := repository.NewMongoExerciseRepository(database.OpenCollection(client, cfg.DatabaseName, "exercise"))

	userController := controller.NewUserController(users, cfg.RequestTimeout)
	exerciseController := controller.NewExerciseController(users, exercises, cfg.RequestTimeout)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log.Logger))
	router.Use(middleware.Metrics())
	router.Use(cors.Default())

	router.StaticFile("/", "./public/index.html")
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", healthCheck(client, cfg.RequestTimeout))

	api := router.Group("/api")
	{
		routes.UserRoutes(api, userController)
		routes.ExerciseRoutes(api, exerciseController)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("exercise tracker listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop, stopCancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopCancel()
	<-stop.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongodb disconnect failed")
	}
	log.Info().Msg("exercise tracker stopped")
}

func healthCheck(client *mongo.Client, timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
