package users

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/accountstore/internal/common"
	"github.com/dmitrijs2005/accountstore/internal/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/writeconcern"
)

// MongoRepository stores users as documents in the users collection.
// Inserts go through a handle with majority write concern; everything else
// uses the database default.
type MongoRepository struct {
	coll    *mongo.Collection
	durable *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		coll:    db.Collection(CollectionName),
		durable: db.Collection(CollectionName, options.Collection().SetWriteConcern(writeconcern.Majority())),
	}
}

// EnsureIndexes creates the unique index on email.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *MongoRepository) Create(ctx context.Context, user *models.User) error {
	doc := *user
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}

	res, err := r.durable.InsertOne(ctx, &doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("db error: %w: %v", common.ErrorAlreadyExists, err)
		}
		return fmt.Errorf("db error: %w", err)
	}
	if !res.Acknowledged {
		return errors.New("db error: insert was not acknowledged")
	}

	user.ID = doc.ID
	return nil
}

func (r *MongoRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	raw, err := r.coll.FindOne(ctx, emailFilter(email)).Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return decodeUser(raw)
}

// decodeUser reads a user document. Documents created elsewhere may carry
// an ObjectId _id; it is read as its hex string.
func decodeUser(raw bson.Raw) (*models.User, error) {
	dec := bson.NewDecoder(bson.NewDocumentReader(bytes.NewReader(raw)))
	dec.ObjectIDAsHexString()

	user := &models.User{}
	if err := dec.Decode(user); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *MongoRepository) Delete(ctx context.Context, email string) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, emailFilter(email))
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return res.Acknowledged, nil
}

// MergePreferences sets each key with its own "preferences.<key>" path, so
// concurrent merges on different keys never overwrite each other.
func (r *MongoRepository) MergePreferences(ctx context.Context, email string, updates map[string]string) (bool, error) {
	if len(updates) == 0 {
		if _, err := r.GetByEmail(ctx, email); err != nil {
			return false, err
		}
		return true, nil
	}

	update, err := preferencesUpdate(updates)
	if err != nil {
		return false, err
	}

	res, err := r.coll.UpdateOne(ctx, emailFilter(email), update)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	if res.MatchedCount == 0 {
		return false, common.ErrorNotFound
	}

	return res.Acknowledged, nil
}

func emailFilter(email string) bson.D {
	return bson.D{{Key: "email", Value: email}}
}

// preferencesUpdate builds a $set document with one dotted path per key,
// sorted for a stable wire form. Keys that would be read as a path or an
// operator are rejected.
func preferencesUpdate(updates map[string]string) (bson.D, error) {
	keys := make([]string, 0, len(updates))
	for k := range updates {
		if k == "" || strings.Contains(k, ".") || strings.HasPrefix(k, "$") {
			return nil, fmt.Errorf("preference key %q cannot be stored", k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	set := make(bson.D, 0, len(keys))
	for _, k := range keys {
		set = append(set, bson.E{Key: "preferences." + k, Value: updates[k]})
	}

	return bson.D{{Key: "$set", Value: set}}, nil
}
