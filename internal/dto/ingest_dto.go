package dto

// CustomerEmbedMessage is the payload published per customer on the embed
// topic. The consumer rebuilds the document chunk from the customers table,
// so the id is all it needs.
type CustomerEmbedMessage struct {
	CustomerId string `json:"customer_id"`
}

type IngestSummary struct {
	Customers int `json:"customers"`
	Queued    int `json:"queued"`
	Skipped   int `json:"skipped"`
}
