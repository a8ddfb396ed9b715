package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"crm-insights-be/pkg/ai/router"
	"crm-insights-be/pkg/dataset"
	"crm-insights-be/pkg/rules"
	"crm-insights-be/pkg/store"

	"github.com/fatih/color"
)

// A scripted conversation that walks every route: social, rule lists,
// follow-up references, a complex query, and the suggestion fallback.
var script = []string{
	"hi",
	"show top churn accounts",
	"tell me more about 2",
	"give details for 1",
	"show distribution of segments",
	"upsell candidates",
	"list low risk customers",
	"show high value customers",
	"tell me about C00001",
	"why do customers churn and what should we do about it?",
	"blorp fizz",
	"thanks",
	"bye",
}

func main() {
	csvPath := flag.String("csv", "data/crm_customers.csv", "path to the processed customers CSV")
	seed := flag.Int64("seed", 42, "RNG seed for reply variation")
	verbose := flag.Bool("v", false, "log routing decisions to stderr")
	flag.Parse()

	rows, err := dataset.LoadCSV(*csvPath)
	if err != nil {
		color.Red("Failed to load dataset: %v", err)
		os.Exit(1)
	}
	snapshot := dataset.NewSnapshot(rows)

	routerLogger := log.New(io.Discard, "", 0)
	if *verbose {
		routerLogger = log.New(os.Stderr, "", log.LstdFlags)
	}

	// Offline run: no vector store, no LLM. The router stays rule-only and
	// the fallback covers whatever the rules can't answer.
	rng := rand.New(rand.NewSource(*seed))
	engine := rules.NewEngine(snapshot, rng, routerLogger)
	queryRouter := router.NewRouter(engine, nil, 0, routerLogger)

	color.Cyan("=== CRM Insights Conversation Simulation ===")
	color.Cyan("Dataset: %s (%d customers)\n", *csvPath, snapshot.Len())

	sess := store.NewSession("simulation")
	ctx := context.Background()

	for _, query := range script {
		fmt.Println()
		color.Yellow("USER: %s", query)

		start := time.Now()
		result := queryRouter.HandleQuery(ctx, query, sess)
		elapsed := time.Since(start)

		sess.LastQuery = query

		color.Green("BOT [%s, %.1f, %v]:", result.Route, result.Complexity, elapsed.Round(time.Microsecond))
		fmt.Println(result.Reply)
	}

	fmt.Println()
	color.Cyan("=== Simulation complete: %d turns ===", len(script))
}
