package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	fb "firebase.google.com/go/v4"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"creatorflow-backend-go/internal/api"
	"creatorflow-backend-go/internal/config"
	"creatorflow-backend-go/internal/core"
	"creatorflow-backend-go/internal/db"
	"creatorflow-backend-go/internal/firebase"
	"creatorflow-backend-go/internal/middleware"
)

const initTimeout = 15 * time.Second

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Printf("WARNING: %v", err)
	}

	// --- 1. Load Application Configuration ---
	appConfig, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to load application configuration: %v", err)
	}

	// --- 2. Initialize Logger (Zap) ---
	zapLogger, err := newLogger(appConfig)
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()
	zapLogger.Info("Application configuration loaded.",
		zap.String("dbDriver", appConfig.DBDriver),
		zap.String("authMode", appConfig.AuthMode),
	)

	// --- 3. Initialize Firebase, storage and authentication ---
	initCtx, cancelInitCtx := context.WithTimeout(context.Background(), initTimeout)
	defer cancelInitCtx()

	var fbApp *fb.App
	if appConfig.NeedsFirebase() {
		fbApp, err = firebase.InitApp(initCtx, appConfig, zapLogger)
		if err != nil {
			zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize Firebase Admin SDK", zap.Error(err))
		}
		zapLogger.Info("Firebase Admin SDK initialized successfully.")
	}

	store, err := openStore(initCtx, appConfig, fbApp)
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to open store", zap.Error(err))
	}
	defer store.Close()
	zapLogger.Info("Store opened successfully.", zap.String("driver", appConfig.DBDriver))

	authenticator, err := newAuthenticator(initCtx, appConfig, fbApp)
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize authenticator", zap.Error(err))
	}
	if appConfig.AuthMode == config.AuthStatic {
		zapLogger.Warn("AUTH_MODE=static: every request runs as the development user", zap.String("userId", appConfig.DevUserID))
	}

	// --- 4. Initialize Services ---
	auditService := core.NewAuditService(store.Audit())
	userService := core.NewUserService(store, auditService, zapLogger)
	brandService := core.NewBrandService(store, auditService, zapLogger)
	dealService := core.NewDealService(store, auditService, zapLogger)
	zapLogger.Info("Core services initialized successfully.")

	// --- 5. Setup Gin HTTP Engine ---
	if appConfig.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()
	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	router.Use(middleware.Metrics())

	if origins := appConfig.ClientOrigins(); len(origins) > 0 {
		router.Use(middleware.CORSMiddleware(origins))
		zapLogger.Info("CORS Middleware enabled", zap.Strings("origins", origins))
	} else {
		zapLogger.Warn("CORS Middleware SKIPPED: CLIENT_URL is not configured. API might not be accessible from a web frontend.")
	}

	api.SetupRoutes(router, zapLogger, store, authenticator, userService, brandService, dealService)

	// --- 6. Configure and Start HTTP Server ---
	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  appConfig.ReadTimeout,
		WriteTimeout: appConfig.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	zapLogger.Info("Starting HTTP server...", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// --- 7. Graceful Shutdown Handling ---
	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quitChannel
	zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), appConfig.ShutdownTimeout)
	defer cancelShutdown()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server forced to shutdown due to error during graceful shutdown", zap.Error(err))
	}
	zapLogger.Info("Server exiting gracefully.")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}

	zapConfig := zap.NewDevelopmentConfig()
	if cfg.IsRelease() {
		zapConfig = zap.NewProductionConfig()
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	return zapConfig.Build()
}

func openStore(ctx context.Context, cfg *config.Config, app *fb.App) (db.Store, error) {
	switch cfg.DBDriver {
	case config.DriverFirestore:
		client, err := app.Firestore(ctx)
		if err != nil {
			return nil, fmt.Errorf("app.Firestore: %w", err)
		}
		return db.NewFirestoreStore(client), nil
	case config.DriverMongo:
		store, err := db.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverMemory:
		return db.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}
}

func newAuthenticator(ctx context.Context, cfg *config.Config, app *fb.App) (middleware.Authenticator, error) {
	switch cfg.AuthMode {
	case config.AuthFirebase:
		client, err := app.Auth(ctx)
		if err != nil {
			return nil, fmt.Errorf("app.Auth: %w", err)
		}
		return middleware.NewFirebaseAuthenticator(client), nil
	case config.AuthJWT:
		return middleware.NewJWTAuthenticator(cfg.JWTSecret, cfg.JWTIssuer), nil
	case config.AuthStatic:
		return middleware.NewStaticAuthenticator(cfg.DevIdentity()), nil
	default:
		return nil, fmt.Errorf("unknown AUTH_MODE %q", cfg.AuthMode)
	}
}
