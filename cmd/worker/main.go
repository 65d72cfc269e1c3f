package main

import (
	"context"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dvloznov/financehub/internal/export"
	"github.com/dvloznov/financehub/internal/gcsarchive"
	bq "github.com/dvloznov/financehub/internal/infra/bigquery"
	fs "github.com/dvloznov/financehub/internal/infra/firestore"
	"github.com/dvloznov/financehub/internal/jobs"
	"github.com/dvloznov/financehub/internal/logger"
	"github.com/dvloznov/financehub/internal/notionsync"
)

// Runs a single export job from the command line. The API server consumes
// queued jobs in-process; this binary covers backfills and manual re-runs.
func main() {
	var (
		projectID = flag.String("project", os.Getenv("GOOGLE_CLOUD_PROJECT"), "GCP project id")
		credFile  = flag.String("credentials", "", "service account credentials file (optional)")
		bucket    = flag.String("bucket", os.Getenv("GCS_BUCKET"), "GCS bucket for transaction archives")
		userID    = flag.String("user", "", "user id to export (required)")
		dests     = flag.String("destinations", "bigquery", "comma-separated destinations: bigquery, gcs, notion")
		timeout   = flag.Duration("timeout", 10*time.Minute, "overall job timeout")
	)
	flag.Parse()

	log := logger.New("worker")

	if *userID == "" {
		log.Fatal().Msg("-user is required")
	}

	job := &jobs.ExportUserJob{
		JobID:  uuid.New().String(),
		UserID: *userID,
	}
	for _, d := range strings.Split(*dests, ",") {
		switch jobs.Destination(strings.TrimSpace(d)) {
		case jobs.DestinationBigQuery:
			job.Destinations = append(job.Destinations, jobs.DestinationBigQuery)
		case jobs.DestinationGCS:
			job.Destinations = append(job.Destinations, jobs.DestinationGCS)
		case jobs.DestinationNotion:
			job.Destinations = append(job.Destinations, jobs.DestinationNotion)
		default:
			log.Fatal().Str("destination", d).Msg("Unknown destination")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	fsClient, err := fs.NewClient(ctx, *projectID, *credFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Firestore client")
	}
	defer fsClient.Close()
	txnRepo := fs.NewTransactionRepository(fsClient)

	var analytics export.AnalyticsSink
	if hasDestination(job, jobs.DestinationBigQuery) {
		exporter, err := bq.NewExporter(ctx, *projectID)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create BigQuery exporter")
		}
		defer exporter.Close()
		analytics = exporter
	}

	var archive export.ArchiveSink
	if hasDestination(job, jobs.DestinationGCS) {
		if *bucket == "" {
			log.Fatal().Msg("-bucket is required for the gcs destination")
		}
		archiver, err := gcsarchive.NewArchiver(ctx, *bucket)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create GCS archiver")
		}
		defer archiver.Close()
		archive = archiver
	}

	var notion export.NotionSink
	if hasDestination(job, jobs.DestinationNotion) {
		token := os.Getenv("NOTION_TOKEN")
		if token == "" {
			log.Fatal().Msg("NOTION_TOKEN is required for the notion destination")
		}
		notion = notionsync.NewSyncer(notionsync.NewClient(token), os.Getenv("NOTION_DATABASE_ID"), log)
	}

	runner := export.NewRunner(txnRepo, analytics, archive, notion, log)
	if err := runner.Run(ctx, job); err != nil {
		log.Fatal().Err(err).Str("user_id", *userID).Msg("Export failed")
	}
	log.Info().Str("user_id", *userID).Str("job_id", job.JobID).Msg("Export complete")
}

func hasDestination(job *jobs.ExportUserJob, d jobs.Destination) bool {
	for _, have := range job.Destinations {
		if have == d {
			return true
		}
	}
	return false
}
