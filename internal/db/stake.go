package db

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stakewell-labs/staking-vault/internal/db/model"
	"github.com/stakewell-labs/staking-vault/internal/types"
)

func (db *Database) SaveNewStake(
	ctx context.Context, stakeDoc *model.StakeDocument,
) error {
	_, err := db.collection(model.StakeCollection).
		InsertOne(ctx, stakeDoc)
	if err != nil {
		var writeErr mongo.WriteException
		if errors.As(err, &writeErr) {
			for _, e := range writeErr.WriteErrors {
				if mongo.IsDuplicateKeyError(e) {
					return &DuplicateKeyError{
						Key:     stakeDoc.StakerAddress,
						Message: "stake already exists for staker",
					}
				}
			}
		}
		return err
	}
	return nil
}

func (db *Database) GetStakeByStakerAddress(
	ctx context.Context, stakerAddress string,
) (*model.StakeDocument, error) {
	filter := bson.M{"_id": stakerAddress}

	res := db.collection(model.StakeCollection).
		FindOne(ctx, filter)

	var stakeDoc model.StakeDocument
	err := res.Decode(&stakeDoc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     stakerAddress,
				Message: "stake not found for staker",
			}
		}
		return nil, err
	}

	return &stakeDoc, nil
}

func (db *Database) GetStakesByStates(
	ctx context.Context, states []types.StakeState,
) ([]*model.StakeDocument, error) {
	stateStrs := make([]string, len(states))
	for i, state := range states {
		stateStrs[i] = state.String()
	}

	filter := bson.M{"state": bson.M{"$in": stateStrs}}

	cursor, err := db.collection(model.StakeCollection).
		Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var stakes []*model.StakeDocument
	if err := cursor.All(ctx, &stakes); err != nil {
		return nil, err
	}

	return stakes, nil
}

// UpdateStakeState flips a stake to newState only when its current state is
// one of the qualified previous states, so concurrent writers cannot race a
// stake through an illegal transition.
func (db *Database) UpdateStakeState(
	ctx context.Context,
	stakerAddress string,
	qualifiedPreviousStates []types.StakeState,
	newState types.StakeState,
) error {
	qualifiedStateStrs := make([]string, len(qualifiedPreviousStates))
	for i, state := range qualifiedPreviousStates {
		qualifiedStateStrs[i] = state.String()
	}

	filter := bson.M{
		"_id":   stakerAddress,
		"state": bson.M{"$in": qualifiedStateStrs},
	}

	update := bson.M{
		"$set": bson.M{
			"state": newState.String(),
		},
	}

	res := db.collection(model.StakeCollection).
		FindOneAndUpdate(ctx, filter, update)

	if res.Err() != nil {
		if errors.Is(res.Err(), mongo.ErrNoDocuments) {
			return &NotFoundError{
				Key:     stakerAddress,
				Message: "stake not found or current state is not qualified states",
			}
		}
		return res.Err()
	}

	return nil
}

// FindUnlockableStakes returns ACTIVE stakes whose lock elapsed at or before
// now, oldest first, up to limit.
func (db *Database) FindUnlockableStakes(
	ctx context.Context, now time.Time, lockDuration time.Duration, limit int64,
) ([]*model.StakeDocument, error) {
	unlockedIfStartedBefore := now.Add(-lockDuration)

	filter := bson.M{
		"state":      types.StateActive.String(),
		"start_time": bson.M{"$lte": unlockedIfStartedBefore},
	}
	opts := options.Find().
		SetSort(bson.M{"start_time": 1}).
		SetLimit(limit)

	cursor, err := db.collection(model.StakeCollection).
		Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var stakes []*model.StakeDocument
	if err := cursor.All(ctx, &stakes); err != nil {
		return nil, err
	}

	return stakes, nil
}

func (db *Database) DeleteStake(ctx context.Context, stakerAddress string) error {
	res, err := db.collection(model.StakeCollection).
		DeleteOne(ctx, bson.M{"_id": stakerAddress})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return &NotFoundError{
			Key:     stakerAddress,
			Message: "stake not found when deleting",
		}
	}
	return nil
}
