package model

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stakewell-labs/staking-vault/internal/config"
)

type index struct {
	Keys   bson.D
	Unique bool
}

var collections = map[string][]index{
	StakeCollection: {
		{Keys: bson.D{{Key: "state", Value: 1}}},
		{Keys: bson.D{{Key: "state", Value: 1}, {Key: "start_time", Value: 1}}},
	},
	StakeHistoryCollection: {
		{Keys: bson.D{{Key: "staker_address", Value: 1}, {Key: "close_time", Value: -1}}},
	},
	ParamEventCollection: {
		{Keys: bson.D{{Key: "event_type", Value: 1}, {Key: "timestamp", Value: -1}}},
	},
}

// Setup creates the vault collections and their indexes. Safe to run on
// every startup; existing collections and indexes are left alone.
func Setup(ctx context.Context, cfg *config.DbConfig) error {
	credential := options.Credential{
		Username: cfg.Username,
		Password: cfg.Password,
	}
	clientOps := options.Client().ApplyURI(cfg.Address).SetAuth(credential)
	client, err := mongo.Connect(ctx, clientOps)
	if err != nil {
		return err
	}

	// Create a context with timeout for the setup process
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	database := client.Database(cfg.DbName)

	for name, idxs := range collections {
		if err := createCollection(ctx, database, name); err != nil {
			return err
		}
		for _, idx := range idxs {
			if err := createIndex(ctx, database, name, idx); err != nil {
				return err
			}
		}
	}

	log.Info().Msg("Database setup complete")
	return client.Disconnect(ctx)
}

func createCollection(ctx context.Context, database *mongo.Database, collectionName string) error {
	// CreateCollection fails if the collection already exists; treat that
	// as success so Setup stays idempotent.
	if err := database.CreateCollection(ctx, collectionName); err != nil {
		var cmdErr mongo.CommandError
		if errors.As(err, &cmdErr) && cmdErr.Name == "NamespaceExists" {
			log.Debug().Msgf("Collection %s already exists", collectionName)
			return nil
		}
		return err
	}

	log.Debug().Msgf("Collection %s created successfully", collectionName)
	return nil
}

func createIndex(ctx context.Context, database *mongo.Database, collectionName string, idx index) error {
	indexModel := mongo.IndexModel{
		Keys:    idx.Keys,
		Options: options.Index().SetUnique(idx.Unique),
	}

	if _, err := database.Collection(collectionName).Indexes().CreateOne(ctx, indexModel); err != nil {
		return err
	}

	log.Debug().Msgf("Index created successfully on collection %s", collectionName)
	return nil
}
