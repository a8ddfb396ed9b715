package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"crm-insights-be/internal/config"
	"crm-insights-be/internal/repository/implementation"
	"crm-insights-be/internal/repository/specification"
	"crm-insights-be/pkg/database"
	"crm-insights-be/pkg/embedding"
	"crm-insights-be/pkg/embedding/jina"
)

// Retrieval diagnostic: embeds a handful of CRM queries, runs them against
// the customer_embeddings table with no threshold, and shows which rows
// would survive at a range of cutoffs. Run it after seeding to sanity-check
// the vector index and to pick a sensible threshold.
func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("DB_CONNECTION_STRING not set")
	}

	embeddingProvider := buildEmbeddingProvider(cfg)

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Failed to connect to DB:", err)
	}

	embeddingRepo := implementation.NewCustomerEmbeddingRepository(db)
	customerRepo := implementation.NewCustomerRepository(db)

	thresholds := []float64{0.70, 0.60, 0.50, 0.40, 0.30}

	queries := []string{
		"customers likely to churn soon",
		"high spending technology accounts",
		"low engagement customers",
		"long tenure loyal accounts",
		"who should we offer an upgrade",
	}
	if len(os.Args) > 1 {
		queries = os.Args[1:]
	}

	ctx := context.Background()

	fmt.Println("=" + strings.Repeat("=", 79))
	fmt.Println("RETRIEVAL DIAGNOSTIC TOOL")
	fmt.Println("=" + strings.Repeat("=", 79))
	fmt.Printf("Embedding Provider: %s\n", cfg.Ai.EmbeddingProvider)

	total, err := embeddingRepo.Count(ctx)
	if err != nil {
		log.Fatal("Failed to count embeddings:", err)
	}
	fmt.Printf("Indexed chunks: %d\n\n", total)
	if total == 0 {
		fmt.Println("Nothing indexed. Run the seed command first.")
		return
	}

	for _, query := range queries {
		fmt.Println("-" + strings.Repeat("-", 79))
		fmt.Printf("QUERY: \"%s\"\n", query)
		fmt.Println("-" + strings.Repeat("-", 79))

		embeddingRes, err := embeddingProvider.Generate(query, "RETRIEVAL_QUERY")
		if err != nil {
			log.Printf("Embedding failed for query '%s': %v", query, err)
			continue
		}

		topK := 10
		scoredResults, err := embeddingRepo.SearchSimilarWithScore(
			ctx,
			embeddingRes.Embedding.Values,
			topK,
			0.0, // no filtering, we want the full score picture
		)
		if err != nil {
			log.Printf("Search failed: %v", err)
			continue
		}

		// Resolve company names for readability
		customerIds := make([]string, len(scoredResults))
		for i, r := range scoredResults {
			customerIds[i] = r.Embedding.CustomerId
		}
		nameMap := make(map[string]string)
		if len(customerIds) > 0 {
			customers, _ := customerRepo.FindAll(ctx, specification.ByCustomerIDs{IDs: customerIds})
			for _, c := range customers {
				nameMap[c.Id] = c.CompanyName
			}
		}

		fmt.Printf("\n%-4s %-10s %-30s %-12s", "#", "Customer", "Company", "Similarity")
		for _, thresh := range thresholds {
			fmt.Printf(" @%.2f", thresh)
		}
		fmt.Println()
		fmt.Println(strings.Repeat("-", 100))

		for i, res := range scoredResults {
			name := nameMap[res.Embedding.CustomerId]
			if name == "" {
				name = "Unknown"
			}
			if len(name) > 28 {
				name = name[:25] + "..."
			}

			fmt.Printf("%-4d %-10s %-30s %-12.4f", i+1, res.Embedding.CustomerId, name, res.Similarity)
			for _, thresh := range thresholds {
				if res.Similarity >= thresh {
					fmt.Print("   Y  ")
				} else {
					fmt.Print("   -  ")
				}
			}
			fmt.Println()
		}
		fmt.Println()

		fmt.Println("Summary by Threshold:")
		for _, thresh := range thresholds {
			count := 0
			for _, res := range scoredResults {
				if res.Similarity >= thresh {
					count++
				}
			}
			fmt.Printf("  Threshold %.2f: %d chunks pass\n", thresh, count)
		}
		fmt.Println()
	}

	fmt.Println("=" + strings.Repeat("=", 79))
	fmt.Println("ANALYSIS COMPLETE")
	fmt.Println("=" + strings.Repeat("=", 79))
	fmt.Println()
	fmt.Println("Current System Configuration:")
	fmt.Println("  pkg/rag/search/retriever.go:")
	fmt.Println("    - DB threshold: 0.0 (no filtering, pipeline takes nearest first)")
	fmt.Printf("    - TopK:         %d (RAG_TOP_K)\n", cfg.Chatbot.RAGTopK)
	fmt.Println()
	fmt.Println("If relevant customers score low across the board, check that the")
	fmt.Println("seeded index and this tool use the same embedding provider.")
}

func buildEmbeddingProvider(cfg *config.Config) embedding.EmbeddingProvider {
	// Same selection the API container makes
	if cfg.Ai.EmbeddingProvider == "jina" {
		if cfg.Keys.Jina == "" {
			log.Fatal("JINA_API_KEY not set")
		}
		return jina.NewJinaProvider(cfg.Keys.Jina)
	}
	provider, err := embedding.NewProvider(
		cfg.Ai.EmbeddingProvider,
		cfg.Keys.GoogleGemini,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OllamaModel,
	)
	if err != nil {
		log.Fatal("Failed to initialize embedding provider:", err)
	}
	return provider
}
