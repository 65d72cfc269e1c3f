package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dvloznov/financehub/internal/api"
	"github.com/dvloznov/financehub/internal/api/handlers"
	"github.com/dvloznov/financehub/internal/auth"
	"github.com/dvloznov/financehub/internal/export"
	"github.com/dvloznov/financehub/internal/gcsarchive"
	"github.com/dvloznov/financehub/internal/identity"
	bq "github.com/dvloznov/financehub/internal/infra/bigquery"
	fs "github.com/dvloznov/financehub/internal/infra/firestore"
	"github.com/dvloznov/financehub/internal/jobs/inmemory"
	"github.com/dvloznov/financehub/internal/logger"
	"github.com/dvloznov/financehub/internal/notionsync"
	"github.com/dvloznov/financehub/internal/suggest"
)

func main() {
	var (
		port      = flag.String("port", "8080", "HTTP server port")
		projectID = flag.String("project", os.Getenv("GOOGLE_CLOUD_PROJECT"), "GCP project id")
		credFile  = flag.String("credentials", "", "service account credentials file (optional)")
		bucket    = flag.String("bucket", os.Getenv("GCS_BUCKET"), "GCS bucket for transaction archives (optional)")
		redisAddr = flag.String("redis", os.Getenv("REDIS_ADDR"), "Redis address for the identity cache (optional)")
	)
	flag.Parse()

	log := logger.New("api")
	ctx := context.Background()

	fsClient, err := fs.NewClient(ctx, *projectID, *credFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Firestore client")
	}
	defer fsClient.Close()

	userRepo := fs.NewUserRepository(fsClient)
	txnRepo := fs.NewTransactionRepository(fsClient)
	contactRepo := fs.NewContactRepository(fsClient)

	var cache identity.Cache = identity.NewSingleSlot()
	if *redisAddr != "" {
		cache = identity.NewRedisCache(goredis.NewClient(&goredis.Options{Addr: *redisAddr}), 24*time.Hour)
		log.Info().Str("addr", *redisAddr).Msg("Using Redis identity cache")
	}
	resolver := identity.NewResolver(cache, userRepo)

	tokens, err := auth.NewTokenIssuer([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create token issuer")
	}
	authSvc := auth.NewService(resolver, userRepo, tokens)

	// Export infrastructure. Sinks are optional; unconfigured ones make
	// jobs naming them fail loudly.
	jobStore := inmemory.NewStore()
	jobQueue := inmemory.NewQueue(100, jobStore)
	defer jobQueue.Close()

	var analytics export.AnalyticsSink
	if *projectID != "" {
		exporter, err := bq.NewExporter(ctx, *projectID)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create BigQuery exporter")
		}
		defer exporter.Close()
		analytics = exporter
	}

	var archive export.ArchiveSink
	if *bucket != "" {
		archiver, err := gcsarchive.NewArchiver(ctx, *bucket)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create GCS archiver")
		}
		defer archiver.Close()
		archive = archiver
	} else {
		log.Warn().Msg("No GCS bucket configured - archive exports disabled")
	}

	var notion export.NotionSink
	if token := os.Getenv("NOTION_TOKEN"); token != "" {
		notion = notionsync.NewSyncer(notionsync.NewClient(token), os.Getenv("NOTION_DATABASE_ID"), log)
	}

	runner := export.NewRunner(txnRepo, analytics, archive, notion, log)

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()
	if err := jobQueue.Start(workerCtx, runner.Run); err != nil {
		log.Fatal().Err(err).Msg("Failed to start export worker")
	}

	h := api.Handlers{
		Auth:     handlers.NewAuthHandler(authSvc, log),
		Identity: handlers.NewIdentityHandler(resolver, log),
		Payments: handlers.NewPaymentsHandler(txnRepo, log),
		Contacts: handlers.NewContactsHandler(contactRepo, log),
		Jobs:     handlers.NewJobsHandler(jobQueue, jobStore, log),
	}

	if os.Getenv("GEMINI_API_KEY") != "" || os.Getenv("GOOGLE_GENAI_USE_VERTEXAI") != "" {
		suggester, err := suggest.NewSuggester(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create category suggester")
		}
		h.Suggest = handlers.NewSuggestHandler(suggester, log)
	} else {
		log.Warn().Msg("No Gemini credentials - category suggestions disabled")
	}

	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      api.NewRouter(h, tokens, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info().Str("port", *port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
	if err := jobQueue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Stopping export worker failed")
	}
}
