package specification

import (
	"time"

	"gorm.io/gorm"
)

// ByCustomerID filters by the dataset's natural customer id, e.g. "C00001"
type ByCustomerID struct {
	ID string
}

func (s ByCustomerID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

// ByCustomerIDs filters by a list of customer ids
type ByCustomerIDs struct {
	IDs []string
}

func (s ByCustomerIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id IN ?", s.IDs)
}

// BySegment filters customers by segment label, case-insensitively
type BySegment struct {
	Segment string
}

func (s BySegment) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(segment) = LOWER(?)", s.Segment)
}

// EmbeddingsForCustomer filters embeddings by their owning customer
type EmbeddingsForCustomer struct {
	CustomerID string
}

func (s EmbeddingsForCustomer) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("customer_id = ?", s.CustomerID)
}

// CreatedSince filters rows created at or after the given instant. The seed
// command uses it to watch embed jobs complete.
type CreatedSince struct {
	Since time.Time
}

func (s CreatedSince) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at >= ?", s.Since)
}
