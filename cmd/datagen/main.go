package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"crm-insights-be/pkg/dataset"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/fatih/color"
)

var industries = []string{
	"Retail", "Manufacturing", "Finance", "Healthcare", "Technology",
	"Logistics", "Education", "Hospitality", "Energy", "Media",
}

var csvHeader = []string{
	"customer_id", "company_name", "industry", "segment",
	"churn_prob", "engagement_score", "monetary",
	"product_diversity", "recency_days", "tenure_days",
	"churned", "last_interaction_date",
}

func main() {
	rows := flag.Int("n", 500, "number of customers to generate")
	out := flag.String("out", "data/crm_customers.csv", "output CSV path")
	seed := flag.Uint64("seed", 0, "RNG seed, 0 picks a random one")
	flag.Parse()

	faker := gofakeit.New(*seed)

	if err := os.MkdirAll(filepath.Dir(*out), 0755); err != nil {
		color.Red("Failed to create output directory: %v", err)
		os.Exit(1)
	}
	f, err := os.Create(*out)
	if err != nil {
		color.Red("Failed to create %s: %v", *out, err)
		os.Exit(1)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		color.Red("Failed to write header: %v", err)
		os.Exit(1)
	}

	now := time.Now()
	for i := 1; i <= *rows; i++ {
		c := generateCustomer(faker, i, now)
		if err := w.Write(c); err != nil {
			color.Red("Failed to write row %d: %v", i, err)
			os.Exit(1)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		color.Red("Failed to flush CSV: %v", err)
		os.Exit(1)
	}

	color.Green("✅ Wrote %d customers to %s", *rows, *out)
}

// generateCustomer draws one row. Segments skew mid_value; churn risk and
// engagement are tied to the segment so rule replies look coherent.
func generateCustomer(faker *gofakeit.Faker, n int, now time.Time) []string {
	var segment string
	switch roll := faker.Float64Range(0, 1); {
	case roll < 0.20:
		segment = dataset.SegmentHighValue
	case roll < 0.70:
		segment = dataset.SegmentMidValue
	default:
		segment = dataset.SegmentAtRisk
	}

	var churnProb, engagement, monetary float64
	var recencyDays int
	switch segment {
	case dataset.SegmentHighValue:
		churnProb = faker.Float64Range(0.05, 0.40)
		engagement = faker.Float64Range(0.45, 0.95)
		monetary = faker.Float64Range(50_000, 500_000)
		recencyDays = faker.IntRange(0, 60)
	case dataset.SegmentMidValue:
		churnProb = faker.Float64Range(0.10, 0.60)
		engagement = faker.Float64Range(0.25, 0.85)
		monetary = faker.Float64Range(5_000, 60_000)
		recencyDays = faker.IntRange(0, 150)
	default:
		churnProb = faker.Float64Range(0.50, 0.95)
		engagement = faker.Float64Range(0.02, 0.40)
		monetary = faker.Float64Range(500, 20_000)
		recencyDays = faker.IntRange(45, 400)
	}

	diversity := faker.IntRange(1, 6)
	if segment == dataset.SegmentHighValue {
		diversity = faker.IntRange(1, 8)
	}

	churned := churnProb > 0.85 && recencyDays > 180

	// A few customers have no recorded interaction at all
	lastInteraction := ""
	if faker.Float64Range(0, 1) >= 0.05 {
		lastInteraction = now.AddDate(0, 0, -recencyDays).Format("2006-01-02")
	} else {
		recencyDays = dataset.DefaultRecencyDays
	}

	return []string{
		fmt.Sprintf("C%05d", n),
		faker.Company(),
		faker.RandomString(industries),
		segment,
		strconv.FormatFloat(churnProb, 'f', 4, 64),
		strconv.FormatFloat(engagement, 'f', 4, 64),
		strconv.FormatFloat(monetary, 'f', 2, 64),
		strconv.Itoa(diversity),
		strconv.Itoa(recencyDays),
		strconv.Itoa(faker.IntRange(30, 3000)),
		strconv.FormatBool(churned),
		lastInteraction,
	}
}
