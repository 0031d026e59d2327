package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stakewell-labs/staking-vault/internal/db/model"
)

func (db *Database) SaveParamEvent(
	ctx context.Context, eventDoc *model.ParamEventDocument,
) error {
	if eventDoc.ID.IsZero() {
		eventDoc.ID = primitive.NewObjectID()
	}

	_, err := db.collection(model.ParamEventCollection).
		InsertOne(ctx, eventDoc)
	return err
}

// GetParamEvents returns the audit journal of administrative changes, most
// recent first, up to limit.
func (db *Database) GetParamEvents(
	ctx context.Context, limit int64,
) ([]*model.ParamEventDocument, error) {
	opts := options.Find().
		SetSort(bson.M{"timestamp": -1}).
		SetLimit(limit)

	cursor, err := db.collection(model.ParamEventCollection).
		Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []*model.ParamEventDocument
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}

	return events, nil
}
