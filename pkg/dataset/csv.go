package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadCSV reads a processed-customers CSV. Columns are addressed by
// header name; missing columns fall back to the documented defaults and
// malformed rows are skipped with a warning rather than aborting the load.
func LoadCSV(path string) ([]Customer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV parses customer rows from r. The first record must be a header.
func ReadCSV(r io.Reader) ([]Customer, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	cols := map[string]int{}
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols["customer_id"]; !ok {
		return nil, fmt.Errorf("dataset csv is missing the customer_id column")
	}

	var rows []Customer
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			log.Printf("[DATASET] skipping line %d: %v", line, err)
			continue
		}
		get := func(col string) string {
			idx, ok := cols[col]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		id := get("customer_id")
		if id == "" {
			log.Printf("[DATASET] skipping line %d: empty customer_id", line)
			continue
		}

		c := Customer{
			ID:               id,
			CompanyName:      get("company_name"),
			Industry:         get("industry"),
			Segment:          get("segment"),
			ChurnProbability: parseFloat(get("churn_prob"), 0),
			EngagementScore:  parseFloat(get("engagement_score"), 0),
			Monetary:         parseFloat(get("monetary"), 0),
			ProductDiversity: parseInt(get("product_diversity"), 0),
			RecencyDays:      parseInt(get("recency_days"), DefaultRecencyDays),
			TenureDays:       parseInt(get("tenure_days"), 0),
			Churned:          parseBool(get("churned")),
			LastInteraction:  parseDate(get("last_interaction_date")),
		}
		rows = append(rows, c.normalize())
	}
	return rows, nil
}

func parseFloat(s string, def float64) float64 {
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		// Some exports write integer columns as floats ("3.0").
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return def
		}
		return int(f)
	}
	return v
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
