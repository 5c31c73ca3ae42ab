package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"propscore-webapp-be/internal/entity"
	"propscore-webapp-be/internal/repository/specification"
	"propscore-webapp-be/internal/repository/unitofwork"
	"propscore-webapp-be/pkg/database"

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

	gormDB, err := database.NewGormDB(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.SearchArchiveRepository())
	assert.NotNil(t, uow.ContactMessageRepository())

	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Archive Round Trip", func(t *testing.T) {
		ctx := context.Background()
		userId := uuid.New()
		queryId := uuid.New()
		completedAt := time.Now().UTC()

		archive := &entity.SearchArchive{
			Id:               uuid.New(),
			UserId:           userId,
			QueryId:          queryId,
			Address:          "88 Harbour St",
			ConfirmedAddress: "88 Harbour St, Toronto, ON",
			PropertyId:       "prop-777",
			ScoreData:        map[string]interface{}{"likelihood_to_sell": 0.66},
			CompletedAt:      completedAt,
		}

		err := uow.SearchArchiveRepository().Create(ctx, archive)
		assert.NoError(t, err)

		found, err := uow.SearchArchiveRepository().FindOne(ctx, specification.ByQueryID{QueryID: queryId})
		assert.NoError(t, err)
		if assert.NotNil(t, found) {
			assert.Equal(t, "88 Harbour St, Toronto, ON", found.ConfirmedAddress)
			assert.Equal(t, userId, found.UserId)
		}

		count, err := uow.SearchArchiveRepository().Count(ctx, specification.UserOwnedBy{UserID: userId})
		assert.NoError(t, err)
		assert.Equal(t, int64(1), count)

		// Cleanup
		err = uow.SearchArchiveRepository().DeleteAllByUserId(ctx, userId)
		assert.NoError(t, err)
	})

	t.Run("Contact Message Insert", func(t *testing.T) {
		ctx := context.Background()
		msg := &entity.ContactMessage{
			Id:        uuid.New(),
			Name:      "Integration Tester",
			Email:     "integration-" + uuid.New().String() + "@example.com",
			Subject:   "Integration run",
			Message:   "Round-trip check for the contact message repository.",
			CreatedAt: time.Now().UTC(),
		}

		err := uow.ContactMessageRepository().Create(ctx, msg)
		assert.NoError(t, err)

		count, err := uow.ContactMessageRepository().Count(ctx, specification.Filter("email", msg.Email))
		assert.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}
