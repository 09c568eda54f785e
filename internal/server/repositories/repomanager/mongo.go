package repomanager

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrijs2005/gophauth/internal/server/repositories/users"
)

type MongoRepositoryManager struct {
	client *mongo.Client
	repo   *users.MongoRepository
}

func NewMongoRepositoryManager(ctx context.Context, uri, database string) (*MongoRepositoryManager, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	return &MongoRepositoryManager{
		client: client,
		repo:   users.NewMongoRepository(client.Database(database)),
	}, nil
}

// RunMigrations ensures the unique email index exists.
func (m *MongoRepositoryManager) RunMigrations(ctx context.Context) error {
	return m.repo.EnsureIndexes(ctx)
}

func (m *MongoRepositoryManager) Users() users.Repository { return m.repo }

func (m *MongoRepositoryManager) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
