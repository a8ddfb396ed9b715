package entity

import (
	"time"
)

type Customer struct {
	Id               string // natural key from the dataset, e.g. "C00001"
	CompanyName      string
	Industry         string
	Segment          string
	ChurnProbability float64
	EngagementScore  float64
	Monetary         float64
	ProductDiversity int
	RecencyDays      int
	TenureDays       int
	Churned          bool
	LastInteraction  *time.Time
	CreatedAt        time.Time
	UpdatedAt        *time.Time
	DeletedAt        *time.Time
	IsDeleted        bool
}
