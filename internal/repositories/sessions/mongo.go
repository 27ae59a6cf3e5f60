package sessions

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/accountstore/internal/common"
	"github.com/dmitrijs2005/accountstore/internal/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoRepository stores sessions as documents keyed by user_id.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CollectionName)}
}

// EnsureIndexes creates the unique index on user_id, which keeps concurrent
// first-time upserts from producing two documents.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("user_id_unique"),
	})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *MongoRepository) Upsert(ctx context.Context, userID, jwt string) (bool, error) {
	res, err := r.coll.UpdateOne(ctx, userFilter(userID), jwtUpdate(jwt), options.UpdateOne().SetUpsert(true))
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return res.Acknowledged, nil
}

func (r *MongoRepository) GetByUserID(ctx context.Context, userID string) (*models.Session, error) {
	session := &models.Session{}
	if err := r.coll.FindOne(ctx, userFilter(userID)).Decode(session); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return session, nil
}

func (r *MongoRepository) DeleteByUserID(ctx context.Context, userID string) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, userFilter(userID))
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return res.Acknowledged, nil
}

func userFilter(userID string) bson.D {
	return bson.D{{Key: "user_id", Value: userID}}
}

func jwtUpdate(jwt string) bson.D {
	return bson.D{{Key: "$set", Value: bson.D{{Key: "jwt", Value: jwt}}}}
}
