package model

import (
	"time"

	"gorm.io/gorm"
)

type Customer struct {
	Id               string `gorm:"type:varchar(32);primaryKey"`
	CompanyName      string `gorm:"type:varchar(255);not null"`
	Industry         string `gorm:"type:varchar(128)"`
	Segment          string `gorm:"type:varchar(32);index"`
	ChurnProbability float64
	EngagementScore  float64
	Monetary         float64
	ProductDiversity int
	RecencyDays      int
	TenureDays       int
	Churned          bool
	LastInteraction  *time.Time
	CreatedAt        time.Time      `gorm:"autoCreateTime"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime"`
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (Customer) TableName() string {
	return "customers"
}
