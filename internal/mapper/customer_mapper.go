package mapper

import (
	"time"

	"crm-insights-be/internal/entity"
	"crm-insights-be/internal/model"
	"crm-insights-be/pkg/dataset"

	"gorm.io/gorm"
)

type CustomerMapper struct{}

func NewCustomerMapper() *CustomerMapper {
	return &CustomerMapper{}
}

func (m *CustomerMapper) ToEntity(e *model.Customer) *entity.Customer {
	if e == nil {
		return nil
	}

	var deletedAt *time.Time
	if e.DeletedAt.Valid {
		t := e.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.Customer{
		Id:               e.Id,
		CompanyName:      e.CompanyName,
		Industry:         e.Industry,
		Segment:          e.Segment,
		ChurnProbability: e.ChurnProbability,
		EngagementScore:  e.EngagementScore,
		Monetary:         e.Monetary,
		ProductDiversity: e.ProductDiversity,
		RecencyDays:      e.RecencyDays,
		TenureDays:       e.TenureDays,
		Churned:          e.Churned,
		LastInteraction:  e.LastInteraction,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        updatedAt,
		DeletedAt:        deletedAt,
		IsDeleted:        e.DeletedAt.Valid,
	}
}

func (m *CustomerMapper) ToModel(e *entity.Customer) *model.Customer {
	if e == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	} else if e.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.Customer{
		Id:               e.Id,
		CompanyName:      e.CompanyName,
		Industry:         e.Industry,
		Segment:          e.Segment,
		ChurnProbability: e.ChurnProbability,
		EngagementScore:  e.EngagementScore,
		Monetary:         e.Monetary,
		ProductDiversity: e.ProductDiversity,
		RecencyDays:      e.RecencyDays,
		TenureDays:       e.TenureDays,
		Churned:          e.Churned,
		LastInteraction:  e.LastInteraction,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        updatedAt,
		DeletedAt:        deletedAt,
	}
}

func (m *CustomerMapper) ToEntities(customers []*model.Customer) []*entity.Customer {
	entities := make([]*entity.Customer, len(customers))
	for i, c := range customers {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *CustomerMapper) ToModels(customers []*entity.Customer) []*model.Customer {
	models := make([]*model.Customer, len(customers))
	for i, c := range customers {
		models[i] = m.ToModel(c)
	}
	return models
}

// ToDatasetRow converts a persisted customer into the in-memory analytics row
// used by the rule engine and insight generator.
func (m *CustomerMapper) ToDatasetRow(e *entity.Customer) dataset.Customer {
	return dataset.Customer{
		ID:               e.Id,
		CompanyName:      e.CompanyName,
		Industry:         e.Industry,
		Segment:          e.Segment,
		ChurnProbability: e.ChurnProbability,
		EngagementScore:  e.EngagementScore,
		Monetary:         e.Monetary,
		ProductDiversity: e.ProductDiversity,
		RecencyDays:      e.RecencyDays,
		TenureDays:       e.TenureDays,
		Churned:          e.Churned,
		LastInteraction:  e.LastInteraction,
	}
}

func (m *CustomerMapper) ToDatasetRows(entities []*entity.Customer) []dataset.Customer {
	rows := make([]dataset.Customer, len(entities))
	for i, e := range entities {
		rows[i] = m.ToDatasetRow(e)
	}
	return rows
}

// FromDatasetRow converts a CSV/analytics row into a persistable entity.
func (m *CustomerMapper) FromDatasetRow(c dataset.Customer) *entity.Customer {
	return &entity.Customer{
		Id:               c.ID,
		CompanyName:      c.CompanyName,
		Industry:         c.Industry,
		Segment:          c.Segment,
		ChurnProbability: c.ChurnProbability,
		EngagementScore:  c.EngagementScore,
		Monetary:         c.Monetary,
		ProductDiversity: c.ProductDiversity,
		RecencyDays:      c.RecencyDays,
		TenureDays:       c.TenureDays,
		Churned:          c.Churned,
		LastInteraction:  c.LastInteraction,
	}
}
