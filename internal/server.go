package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/gymstats/internal/config"
	"github.com/2beens/gymstats/internal/gymstats"
	"github.com/2beens/gymstats/internal/gymstats/coach"
	"github.com/2beens/gymstats/internal/gymstats/labels"
	gymstatsmcp "github.com/2beens/gymstats/internal/gymstats/mcp"
	"github.com/2beens/gymstats/internal/gymstats/progress"
	"github.com/2beens/gymstats/internal/gymstats/store"
	"github.com/2beens/gymstats/internal/gymstats/workout"
	"github.com/2beens/gymstats/internal/middleware"
	"github.com/2beens/gymstats/internal/telemetry/metrics"
	"github.com/2beens/gymstats/internal/telemetry/tracing"
	"github.com/2beens/gymstats/pkg"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/coocood/freecache"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/multierr"
	"google.golang.org/genai"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config  *config.Config
	secrets *config.Secrets
	backend *store.Backend

	engine     *workout.Engine
	aggregator *progress.Aggregator
	coach      *coach.Service

	redisClient *redis.Client

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config      *config.Config
	Secrets     *config.Secrets
	VersionInfo string
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg, secrets := params.Config, params.Secrets

	var rdb *redis.Client
	if cfg.RedisHost != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: secrets.RedisPassword,
			DB:       0, // use default DB
		})
		rdbStatus := rdb.Ping(ctx)
		if err := rdbStatus.Err(); err != nil {
			log.Errorf("--> failed to ping redis: %s", err)
		} else {
			log.Debugf("redis ping: %s", rdbStatus.Val())
		}
	} else {
		log.Warnln("redis not configured, coach chat history and rate limiting disabled")
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(secrets.HoneycombEnabled, secrets.OtelServiceName, rdb)
	if err != nil {
		return nil, err
	}

	backend, err := store.Open(ctx, store.OpenParams{
		Config:           cfg,
		PostgresPassword: secrets.PostgresPassword,
		TracingEnabled:   secrets.HoneycombEnabled,
	})
	if err != nil {
		otelShutdown()
		return nil, fmt.Errorf("open store: %w", err)
	}

	var collectors []prometheus.Collector
	if backend.Pool != nil {
		collectors = append(collectors, pgxpoolprometheus.NewCollector(
			backend.Pool,
			map[string]string{"db_name": cfg.PostgresDBName},
		))
	}
	promRegistry := metrics.SetupPrometheus(collectors...)
	metricsManager := metrics.NewManager("gymstats", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	removeMatch, err := workout.ParseMatchStrategy(cfg.RemoveMatch)
	if err != nil {
		return nil, err
	}
	engine := workout.NewEngine(workout.EngineParams{
		Store:       backend.Store,
		RemoveMatch: removeMatch,
		LockLogged:  cfg.LockLogged,
	})

	coachService, err := newCoachService(ctx, cfg, secrets, engine, rdb, metricsManager)
	if err != nil {
		return nil, err
	}

	return &Server{
		config:      cfg,
		secrets:     secrets,
		versionInfo: params.VersionInfo,
		backend:     backend,

		engine:     engine,
		aggregator: progress.NewAggregator(engine),
		coach:      coachService,

		redisClient: rdb,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

// newCoachService wires the advice generator and the label detector selected in config.
// Without a provider the service is still returned, but reports itself disabled.
func newCoachService(
	ctx context.Context,
	cfg *config.Config,
	secrets *config.Secrets,
	engine *workout.Engine,
	rdb *redis.Client,
	metricsManager *metrics.Manager,
) (*coach.Service, error) {
	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   time.Minute,
	}

	var geminiClient *genai.Client
	if (cfg.CoachProvider == "gemini" || cfg.LabelsEnabled) && secrets.GeminiAPIKey != "" {
		var err error
		geminiClient, err = coach.NewGeminiClient(ctx, secrets.GeminiAPIKey, tracedHttpClient, "")
		if err != nil {
			return nil, err
		}
	}

	params := coach.ServiceParams{
		Sessions:       engine,
		MacrosCache:    freecache.NewCache(cfg.MacrosCacheSizeMB * 1024 * 1024),
		MacrosCacheTTL: time.Duration(cfg.MacrosCacheTTLSeconds) * time.Second,
		HistoryLimit:   cfg.CoachHistoryLimit,
		Metrics:        metricsManager,
	}

	switch cfg.CoachProvider {
	case "openai":
		if secrets.OpenAIAPIKey == "" {
			log.Errorln("openai coach disabled: no api key")
			break
		}
		params.Generator = coach.NewOpenAIGenerator(
			cfg.OpenAIModel,
			coach.OpenAIOptions(secrets.OpenAIAPIKey, tracedHttpClient)...,
		)
	case "gemini":
		if geminiClient == nil {
			log.Errorln("gemini coach disabled: no api key")
			break
		}
		params.Generator = coach.NewGeminiGenerator(geminiClient, cfg.GeminiModel)
	default:
		log.Infoln("coach disabled")
	}

	if rdb != nil {
		params.Chat = coach.NewRedisChatHistory(rdb, cfg.CoachChatTurns)
	}
	if cfg.LabelsEnabled && geminiClient != nil {
		params.Labels = labels.NewGeminiDetector(geminiClient, cfg.GeminiModel)
	}

	return coach.NewService(params), nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("gymstats-router"))

	r.HandleFunc("/health", s.handleHealth).Methods("GET").Name("health")
	r.HandleFunc("/version", s.handleVersion).Methods("GET").Name("version")

	sessionsHandler := gymstats.NewHandler(s.engine, s.coach, s.metricsManager)
	r.HandleFunc("/gymstats/sessions", sessionsHandler.HandleStart).Methods("POST", "OPTIONS").Name("start-session")
	r.HandleFunc("/gymstats/sessions/{id}", sessionsHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-session")
	r.HandleFunc("/gymstats/sessions/{id}", sessionsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-session")
	r.HandleFunc("/gymstats/sessions/{id}/exercises", sessionsHandler.HandleAddExercise).Methods("PATCH", "OPTIONS").Name("add-exercise")
	r.HandleFunc("/gymstats/sessions/{id}/exercises/remove", sessionsHandler.HandleRemoveExercise).Methods("PATCH", "OPTIONS").Name("remove-exercise")
	r.HandleFunc("/gymstats/sessions/{id}/log", sessionsHandler.HandleLog).Methods("PATCH", "OPTIONS").Name("log-session")
	r.HandleFunc("/gymstats/users/{userId}/sessions", sessionsHandler.HandleListByUser).Methods("GET", "OPTIONS").Name("list-sessions")

	progressHandler := gymstats.NewProgressHandler(s.aggregator, s.engine, s.config.CoachHistoryLimit)
	r.HandleFunc("/gymstats/users/{userId}/exercises/{name}/progress", progressHandler.HandleProgress).Methods("GET", "OPTIONS").Name("exercise-progress")
	r.HandleFunc("/gymstats/users/{userId}/exercises/{name}/daily", progressHandler.HandleDailyStats).Methods("GET", "OPTIONS").Name("exercise-daily-stats")
	r.HandleFunc("/gymstats/users/{userId}/catalog", progressHandler.HandleCatalog).Methods("GET", "OPTIONS").Name("exercise-catalog")
	r.HandleFunc("/gymstats/users/{userId}/history", progressHandler.HandleHistory).Methods("GET", "OPTIONS").Name("history")

	coachHandler := gymstats.NewCoachHandler(s.coach, s.backend.Profiles, s.config.MaxPhotoUploadSizeMB)
	r.HandleFunc("/gymstats/macros/profile", coachHandler.HandleMacroProfile).Methods("POST", "OPTIONS").Name("save-macro-profile")
	r.HandleFunc("/gymstats/users/{userId}/macros/profile", coachHandler.HandleGetMacroProfile).Methods("GET", "OPTIONS").Name("get-macro-profile")

	coachRouter := r.PathPrefix("/gymstats/coach").Subrouter()
	coachRouter.HandleFunc("/ask", coachHandler.HandleAsk).Methods("POST", "OPTIONS").Name("coach-ask")
	coachRouter.HandleFunc("/macros", coachHandler.HandleMacros).Methods("POST", "OPTIONS").Name("coach-macros")
	coachRouter.HandleFunc("/photo-macros", coachHandler.HandlePhotoMacros).Methods("POST", "OPTIONS").Name("coach-photo-macros")
	if s.redisClient != nil {
		coachRouter.Use(middleware.RateLimit(
			redis_rate.NewLimiter(s.redisClient),
			"coach",
			s.config.CoachRateLimitPerMin,
			s.metricsManager,
		))
	}

	if s.config.McpEndpointEnabled {
		var schemaRepo gymstatsmcp.SchemaRepo
		if s.backend.Pool != nil {
			schemaRepo = gymstatsmcp.NewPoolSchemaRepo(s.backend.Pool)
		}
		mcpServer := gymstatsmcp.NewServer(schemaRepo, s.aggregator, s.engine)
		mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
			return mcpServer
		}, nil)
		r.PathPrefix("/mcp").Handler(mcpHandler).Name("mcp")
	}

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(
		s.secrets.APIToken,
		s.secrets.McpSecret,
	)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "ok")
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, s.versionInfo)
}

func (s *Server) Serve(host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: 2 * time.Minute,
		ReadTimeout:  time.Minute,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

// GracefulShutdown stops the listeners first, then releases redis, the store and tracing.
func (s *Server) GracefulShutdown() error {
	log.Debug("graceful shutdown initiated ...")
	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	var err error
	if s.httpServer != nil {
		if sErr := s.httpServer.Shutdown(ctx); sErr != nil {
			err = multierr.Append(err, fmt.Errorf("shutdown http server: %w", sErr))
		}
		log.Warnln("server shut down")
	}
	if s.metricsHttpServer != nil {
		if sErr := s.metricsHttpServer.Shutdown(ctx); sErr != nil {
			err = multierr.Append(err, fmt.Errorf("shutdown metrics http server: %w", sErr))
		}
		log.Warnln("metrics server shut down")
	}

	if s.redisClient != nil {
		if rErr := s.redisClient.Close(); rErr != nil {
			err = multierr.Append(err, fmt.Errorf("close redis client: %w", rErr))
		}
	}

	if s.backend != nil {
		if bErr := s.backend.Close(ctx); bErr != nil {
			err = multierr.Append(err, bErr)
		}
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	return err
}
