// Package main is the entry point for the UnifiedUI Document Service.
// @title UnifiedUI Document Service API
// @version 1.0
// @description Read access to stored documents: single and bulk lookup by id plus the all-documents view.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/unifiedui/document-service
// @contact.email support@unifiedui.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8086
// @BasePath /api/v1/document-service
// @schemes http https
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/unifiedui/document-service/docs"
	"github.com/unifiedui/document-service/internal/api/handlers"
	"github.com/unifiedui/document-service/internal/api/middleware"
	"github.com/unifiedui/document-service/internal/api/routes"
	"github.com/unifiedui/document-service/internal/config"
	"github.com/unifiedui/document-service/internal/core/docdb"
	"github.com/unifiedui/document-service/internal/domain/models"
	"github.com/unifiedui/document-service/internal/infrastructure/docdb/couchdb"
	"github.com/unifiedui/document-service/internal/infrastructure/docdb/memory"
	"github.com/unifiedui/document-service/internal/infrastructure/docdb/mongodb"
	redisdocdb "github.com/unifiedui/document-service/internal/infrastructure/docdb/redis"
	"github.com/unifiedui/document-service/internal/pkg/logging"
	"github.com/unifiedui/document-service/internal/services/documents"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := logging.Setup(cfg.Log)

	ctx := context.Background()

	docDBClient, err := createDocDBClient(ctx, cfg.DocDB)
	if err != nil {
		logger.Fatal().Err(err).Str("type", cfg.DocDB.Type).Msg("failed to initialize document db client")
	}
	defer func() {
		if err := docDBClient.Close(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("failed to close document db client")
		}
	}()

	accessor, err := documents.NewAccessor(&documents.Config[models.Document]{
		Database: docDBClient.Database(),
		Views:    docDBClient.Views(),
		Factory:  models.BuildDocument,
		Logger:   &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize document accessor")
	}

	gin.SetMode(cfg.Server.GinMode)

	router := setupRouter(cfg, docDBClient, accessor)

	srv := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("address", cfg.Server.Address()).Str("docdb", cfg.DocDB.Type).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	logger.Info().Msg("server exited")
}

// createDocDBClient creates a document database client based on the configuration.
func createDocDBClient(ctx context.Context, cfg config.DocDBConfig) (docdb.Client, error) {
	switch docdb.Type(cfg.Type) {
	case docdb.TypeMongoDB, docdb.TypeCosmosDB:
		// Cosmos DB speaks the MongoDB wire protocol.
		return mongodb.NewClient(ctx, &mongodb.ClientConfig{
			URI:            cfg.MongoDB.URI,
			DatabaseName:   cfg.MongoDB.Database,
			CollectionName: cfg.MongoDB.Collection,
		})
	case docdb.TypeCouchDB:
		return couchdb.NewClient(ctx, &couchdb.ClientConfig{
			URL:      cfg.CouchDB.URL,
			Database: cfg.CouchDB.Database,
			Username: cfg.CouchDB.Username,
			Password: cfg.CouchDB.Password,
			AllView:  cfg.CouchDB.AllView,
			Timeout:  cfg.CouchDB.Timeout,
		})
	case docdb.TypeRedis:
		return redisdocdb.NewClient(redisdocdb.Config{
			Host:      cfg.Redis.Host,
			Port:      cfg.Redis.Port,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.KeyPrefix,
		})
	case docdb.TypeMemory:
		return memory.NewClient(&memory.ClientConfig{
			SeedFile: cfg.Memory.SeedFile,
		})
	default:
		return nil, fmt.Errorf("unsupported docdb type: %s", cfg.Type)
	}
}

// setupRouter creates and configures the Gin router.
func setupRouter(cfg *config.Config, docDBClient docdb.Client, accessor *documents.Accessor[models.Document]) *gin.Engine {
	router := gin.New()

	loggingMw := middleware.NewLoggingMiddleware()
	errorMw := middleware.NewErrorMiddleware()
	corsCfg := middleware.DefaultCORSConfig(cfg.Server.CORSAllowOrigins)

	router.Use(middleware.NewCORSMiddleware(corsCfg))
	middleware.SetupCORSRoutes(router, corsCfg)

	routes.SetupWithMiddleware(router, &routes.Config{
		HealthHandler:    handlers.NewHealthHandler(docDBClient),
		DocumentsHandler: handlers.NewDocumentsHandler(accessor),
	}, loggingMw, errorMw)

	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}
