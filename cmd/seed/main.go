package main

import (
	"context"
	"flag"
	"log"
	"time"

	"crm-insights-be/internal/bootstrap"
	"crm-insights-be/internal/config"
	"crm-insights-be/internal/repository/specification"
	"crm-insights-be/internal/repository/unitofwork"
	"crm-insights-be/pkg/database"

	"github.com/fatih/color"
)

const embedWaitTimeout = 10 * time.Minute

func main() {
	csvPath := flag.String("csv", "", "path to the processed customers CSV (defaults to DATA_FILE_PATH)")
	skipEmbed := flag.Bool("skip-embed", false, "upsert customers without queueing embed jobs")
	fresh := flag.Bool("fresh", false, "hard-delete all embeddings first, dropping rows for customers no longer in the CSV")
	flag.Parse()

	cfg := config.Load()

	path := *csvPath
	if path == "" {
		path = cfg.Chatbot.DataFilePath
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("🚀 Seeding customer dataset from %s\n", path)

	container := bootstrap.NewContainer(db, cfg)
	uowFactory := unitofwork.NewRepositoryFactory(db)
	ctx := context.Background()

	if *fresh {
		uow := uowFactory.NewUnitOfWork(ctx)
		if err := uow.CustomerEmbeddingRepository().DeleteAllUnscoped(ctx); err != nil {
			color.Red("Failed to clear embeddings: %v", err)
			return
		}
		color.Yellow("Cleared existing embeddings")
	}

	// The consumer must be subscribed before the first embed job is
	// published; the gochannel bus drops messages without a subscriber.
	if !*skipEmbed {
		if err := container.ConsumerService.Consume(ctx); err != nil {
			color.Red("Failed to start embedding consumer: %v", err)
			return
		}
	}

	startedAt := time.Now()

	summary, err := container.IngestService.IngestCSV(ctx, path)
	if err != nil {
		color.Red("Ingest failed: %v", err)
		return
	}

	color.Green("Upserted %d customers (%d embed jobs queued, %d skipped)", summary.Customers, summary.Queued, summary.Skipped)

	if *skipEmbed || summary.Queued == 0 {
		color.Green("✅ Seed completed")
		return
	}

	color.Yellow("Waiting for embed jobs to finish...")
	done := waitForEmbeddings(ctx, uowFactory, startedAt, summary.Queued)
	if done {
		color.Green("✅ Seed completed, %d customers embedded", summary.Queued)
	} else {
		color.Yellow("⚠ Timed out waiting for embed jobs; re-run seed to finish the remainder")
	}
}

// waitForEmbeddings polls the embeddings table until every queued job has
// landed a row newer than the seed start, or the timeout passes.
func waitForEmbeddings(ctx context.Context, uowFactory unitofwork.RepositoryFactory, since time.Time, want int) bool {
	deadline := time.Now().Add(embedWaitTimeout)
	for time.Now().Before(deadline) {
		uow := uowFactory.NewUnitOfWork(ctx)
		count, err := uow.CustomerEmbeddingRepository().Count(ctx, specification.CreatedSince{Since: since})
		if err != nil {
			color.Red("Failed to count embeddings: %v", err)
			return false
		}
		if count >= int64(want) {
			return true
		}
		color.Yellow("  embedded %d/%d...", count, want)
		time.Sleep(2 * time.Second)
	}
	return false
}
