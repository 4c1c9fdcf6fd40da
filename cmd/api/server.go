package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/api/option"

	"truthprevails/internal/adapter/api"
	"truthprevails/internal/adapter/api/handler"
	apimiddleware "truthprevails/internal/adapter/api/middleware"
	"truthprevails/internal/adapter/api/router"
	"truthprevails/internal/adapter/repository"
	domainrepo "truthprevails/internal/domain/repository"
	"truthprevails/internal/domain/service"
	"truthprevails/internal/infrastructure/blockchain"
	"truthprevails/internal/infrastructure/cache"
	"truthprevails/internal/infrastructure/firebase"
	"truthprevails/internal/infrastructure/identity"
	"truthprevails/internal/infrastructure/metrics"
	"truthprevails/internal/infrastructure/ratelimit"
	"truthprevails/internal/infrastructure/storage"
	"truthprevails/internal/infrastructure/websocket"
	"truthprevails/internal/usecase"
	"truthprevails/pkg/config"
	"truthprevails/pkg/logger"
	"truthprevails/pkg/response"
)

const devWalletSecret = "development-wallet-secret"

type identityBackend interface {
	usecase.IdentityProvider
	apimiddleware.TokenVerifier
}

type accountBackends struct {
	users    domainrepo.UserRepository
	files    domainrepo.FileRecordRepository
	identity identityBackend
	database string
	close    func()
}

type server struct {
	echo     *echo.Echo
	features map[string]string
	closers  []func()
}

func (s *server) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// buildServer wires every component. Missing or broken configuration degrades the matching
// feature; it never stops the process.
func buildServer(ctx context.Context, cfg *config.Config, reg *prometheus.Registry) *server {
	srv := &server{features: map[string]string{}}

	clientOpt := googleCredentials(cfg)

	accounts := newAccountBackends(ctx, cfg, clientOpt)
	srv.closers = append(srv.closers, accounts.close)
	srv.features["database"] = accounts.database
	srv.features["identity"] = accounts.identity.Name()

	fileStore := newFileStore(ctx, cfg, clientOpt)
	srv.closers = append(srv.closers, func() { fileStore.Close() })
	srv.features["storage"] = fileStore.Provider()

	registry := newRegistry(ctx, cfg)
	srv.features["registry"] = registry.Mode()

	walletSecret := cfg.WalletEncryptionSecret
	if walletSecret == "" && cfg.IsDevelopment() {
		logger.Warn("WALLET_ENCRYPTION_SECRET is not set; using the development secret")
		walletSecret = devWalletSecret
	}

	m := metrics.New(reg)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	authUseCase := usecase.NewAuthUseCase(accounts.users, accounts.identity, walletSecret)
	userUseCase := usecase.NewUserUseCase(accounts.users, accounts.files, fileStore, accounts.identity, walletSecret)
	fileUseCase := usecase.NewFileUseCase(accounts.files, fileStore, registry, userUseCase, m, cfg.BlockExplorerURL)
	fileUseCase.SetNotifier(wsManager)
	verificationUseCase := usecase.NewVerificationUseCase(registry, accounts.files, userUseCase, m, cfg.BlockExplorerURL)
	tamperUseCase := usecase.NewTamperDetectionUseCase(m)

	handlers := handler.Handlers{
		Auth:         handler.NewAuthHandler(authUseCase, userUseCase),
		File:         handler.NewFileHandler(fileUseCase, cfg.MaxUploadSize),
		Verification: handler.NewVerificationHandler(verificationUseCase, cfg.MaxUploadSize),
		Tamper:       handler.NewTamperHandler(tamperUseCase, cfg.MaxUploadSize),
		Health:       handler.NewHealthHandler(cfg.ServiceName, cfg.ServiceVersion, srv.features),
		WebSocket:    handler.NewWebSocketHandler(wsManager, cfg.AllowedOrigins),
	}

	limiters := router.Limiters{
		Auth:   ratelimit.NewRateLimiter(5, time.Minute),
		Public: ratelimit.NewRateLimiter(60, time.Minute),
	}
	go limiters.Auth.StartCleanupRoutine(10*time.Minute, ctx.Done())
	go limiters.Public.StartCleanupRoutine(10*time.Minute, ctx.Done())

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = response.HTTPErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(apimiddleware.RequestLog(logger.L(), m))
	e.Use(middleware.BodyLimit(bodyLimit(cfg.MaxUploadSize)))
	e.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
		Timeout: cfg.RequestTimeout,
		Skipper: func(c echo.Context) bool { return c.Path() == "/ws" },
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	router.Setup(e, handlers, apimiddleware.NewAuthMiddleware(accounts.identity), limiters)

	srv.echo = e
	return srv
}

func googleCredentials(cfg *config.Config) option.ClientOption {
	if cfg.FirebaseServiceAccountJSON != "" {
		logger.Info("Using Firebase service account from environment variable")
		return option.WithCredentialsJSON([]byte(cfg.FirebaseServiceAccountJSON))
	}
	if cfg.FirebaseServiceAccountPath == "" {
		return nil
	}
	if _, err := os.Stat(cfg.FirebaseServiceAccountPath); err != nil {
		logger.Warn("Service account file %s is not readable: %v", cfg.FirebaseServiceAccountPath, err)
		return nil
	}
	logger.Info("Using Firebase service account from file: %s", cfg.FirebaseServiceAccountPath)
	return option.WithCredentialsFile(cfg.FirebaseServiceAccountPath)
}

// newAccountBackends prefers Firestore and Firebase Auth. Without them, development runs on
// in-memory repositories with local tokens, and other environments disable the account routes.
func newAccountBackends(ctx context.Context, cfg *config.Config, clientOpt option.ClientOption) *accountBackends {
	reason := "FIREBASE_PROJECT_ID and service account credentials are not configured"

	if cfg.FirebaseProject != "" && clientOpt != nil {
		backends, err := firebaseBackends(ctx, cfg.FirebaseProject, clientOpt)
		if err == nil {
			return backends
		}
		logger.Error("Firebase unavailable: %v", err)
		reason = err.Error()
	}

	if cfg.IsDevelopment() {
		logger.Warn("Firebase is not configured; using in-memory repositories and local tokens")
		return &accountBackends{
			users:    repository.NewMemoryUserRepository(),
			files:    repository.NewMemoryFileRecordRepository(),
			identity: identity.NewLocalProvider(cfg.JWTSecret, time.Duration(cfg.JWTExpiry)*time.Second),
			database: "memory",
			close:    func() {},
		}
	}

	logger.Warn("Account features are disabled: %s", reason)
	return &accountBackends{
		users:    repository.NewMemoryUserRepository(),
		files:    repository.NewMemoryFileRecordRepository(),
		identity: identity.NewUnavailableProvider(reason),
		database: "unavailable",
		close:    func() {},
	}
}

func firebaseBackends(ctx context.Context, project string, clientOpt option.ClientOption) (*accountBackends, error) {
	app, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: project}, clientOpt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase: %v", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, project, clientOpt)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %v", err)
	}

	return &accountBackends{
		users:    repository.NewFirestoreUserRepository(firestoreClient),
		files:    repository.NewFirestoreFileRecordRepository(firestoreClient),
		identity: firebase.NewFirebaseAuthClient(authClient),
		database: "firestore",
		close:    func() { firestoreClient.Close() },
	}, nil
}

func newFileStore(ctx context.Context, cfg *config.Config, clientOpt option.ClientOption) service.FileUploadService {
	switch cfg.StorageProvider {
	case "gcs":
		var opts []option.ClientOption
		if clientOpt != nil {
			opts = append(opts, clientOpt)
		}
		store, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, cfg.StorageTimeout, opts...)
		if err == nil {
			return store
		}
		logger.Warn("Cloud Storage unavailable: %v", err)
		return fallbackStore(cfg, err.Error())
	case "s3":
		store, err := storage.NewS3Client(ctx, storage.S3Config{
			Bucket:    cfg.StorageBucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		}, cfg.StorageTimeout)
		if err == nil {
			return store
		}
		logger.Warn("S3 storage unavailable: %v", err)
		return fallbackStore(cfg, err.Error())
	case "memory":
		return storage.NewMemoryStore()
	default:
		return storage.NewUnavailableStore("storage is disabled")
	}
}

func fallbackStore(cfg *config.Config, reason string) service.FileUploadService {
	if cfg.IsDevelopment() {
		logger.Warn("Falling back to in-memory file storage")
		return storage.NewMemoryStore()
	}
	return storage.NewUnavailableStore(reason)
}

func newRegistry(ctx context.Context, cfg *config.Config) service.HashRegistry {
	var registry service.HashRegistry

	switch cfg.ResolveRegistryMode() {
	case "contract":
		contract, err := blockchain.NewContractRegistry(ctx, cfg.BlockchainRPCURL, cfg.ContractAddress, cfg.BlockchainTimeout)
		if err != nil {
			logger.Warn("Blockchain registry unavailable: %v", err)
			return blockchain.NewUnavailableRegistry(err.Error())
		}
		registry = contract
	case "memory":
		logger.Warn("Using the in-memory hash registry; anchors are lost on restart")
		return blockchain.NewMemoryRegistry()
	default:
		return blockchain.NewUnavailableRegistry("blockchain registry is disabled")
	}

	if cfg.RedisURL == "" {
		return registry
	}
	entryCache, err := cache.NewRedisEntryCache(ctx, cfg.RedisURL, 2*time.Second)
	if err != nil {
		logger.Warn("Redis unavailable, verification results are not cached: %v", err)
		return registry
	}
	return blockchain.NewCachedRegistry(registry, entryCache)
}

// bodyLimit leaves room for multipart framing around the largest accepted file.
func bodyLimit(maxUpload int64) string {
	return fmt.Sprintf("%dK", maxUpload/1024+1024)
}
