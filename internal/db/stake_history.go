package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stakewell-labs/staking-vault/internal/db/model"
)

func (db *Database) SaveStakeHistory(
	ctx context.Context, historyDoc *model.StakeHistoryDocument,
) error {
	if historyDoc.ID.IsZero() {
		historyDoc.ID = primitive.NewObjectID()
	}

	_, err := db.collection(model.StakeHistoryCollection).
		InsertOne(ctx, historyDoc)
	return err
}

// GetStakeHistoryByStaker returns a staker's closed stakes, most recently
// closed first.
func (db *Database) GetStakeHistoryByStaker(
	ctx context.Context, stakerAddress string,
) ([]*model.StakeHistoryDocument, error) {
	filter := bson.M{"staker_address": stakerAddress}
	opts := options.Find().SetSort(bson.M{"close_time": -1})

	cursor, err := db.collection(model.StakeHistoryCollection).
		Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var history []*model.StakeHistoryDocument
	if err := cursor.All(ctx, &history); err != nil {
		return nil, err
	}

	return history, nil
}
