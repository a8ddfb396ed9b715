package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"crm-insights-be/internal/entity"
	"crm-insights-be/internal/repository/specification"
	"crm-insights-be/internal/repository/unitofwork"
	"crm-insights-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.CustomerRepository())
	assert.NotNil(t, uow.CustomerEmbeddingRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check Customer Repository", func(t *testing.T) {
		count, err := uow.CustomerRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Customer count: %d", count)
	})

	t.Run("Check Customer Embedding Repository", func(t *testing.T) {
		count, err := uow.CustomerEmbeddingRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("CustomerEmbedding count: %d", count)
	})

	t.Run("Transactional Customer With Embedding Rolls Back", func(t *testing.T) {
		ctx := context.Background()
		customerId := "ITEST-" + uuid.New().String()[:8]

		err := uow.Begin(ctx)
		assert.NoError(t, err)

		customer := &entity.Customer{
			Id:               customerId,
			CompanyName:      "Integration Test Co",
			Industry:         "Technology",
			Segment:          "mid_value",
			ChurnProbability: 0.42,
			EngagementScore:  0.5,
			Monetary:         1234.56,
			ProductDiversity: 2,
			RecencyDays:      10,
			TenureDays:       365,
			CreatedAt:        time.Now(),
		}
		err = uow.CustomerRepository().Create(ctx, customer)
		assert.NoError(t, err)

		// The vector column is fixed at 768 dimensions
		embedding := &entity.CustomerEmbedding{
			Id:             uuid.New(),
			Document:       "Customer Integration Test Co, segment mid_value.",
			EmbeddingValue: make([]float32, 768),
			CustomerId:     customerId,
			Metadata:       map[string]interface{}{"segment": "mid_value"},
			CreatedAt:      time.Now(),
		}
		err = uow.CustomerEmbeddingRepository().CreateBulk(ctx, []*entity.CustomerEmbedding{embedding})
		assert.NoError(t, err)

		// Visible inside the transaction
		found, err := uow.CustomerRepository().FindOne(ctx, specification.ByCustomerID{ID: customerId})
		assert.NoError(t, err)
		assert.NotNil(t, found)

		embeddings, err := uow.CustomerEmbeddingRepository().FindAll(ctx, specification.EmbeddingsForCustomer{CustomerID: customerId})
		assert.NoError(t, err)
		assert.Len(t, embeddings, 1)

		byId, err := uow.CustomerEmbeddingRepository().FindOne(ctx, specification.ByID{ID: embedding.Id})
		assert.NoError(t, err)
		assert.NotNil(t, byId)

		// Segment lookup is case-insensitive
		segCount, err := uow.CustomerRepository().Count(ctx, specification.BySegment{Segment: "MID_VALUE"})
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, segCount, int64(1))

		err = uow.Rollback()
		assert.NoError(t, err)

		// Gone after rollback, nothing leaks into the table
		after, err := uow.CustomerRepository().FindOne(context.Background(), specification.ByCustomerID{ID: customerId})
		assert.NoError(t, err)
		assert.Nil(t, after)

		t.Log("Transaction rollback left no customer or embedding rows behind")
	})
}
