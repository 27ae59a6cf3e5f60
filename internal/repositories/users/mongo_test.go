package users

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/dmitrijs2005/accountstore/internal/common"
	"github.com/dmitrijs2005/accountstore/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func TestPreferencesUpdate(t *testing.T) {
	got, err := preferencesUpdate(map[string]string{"theme": "light", "lang": "en"})
	require.NoError(t, err)

	want := bson.D{{Key: "$set", Value: bson.D{
		{Key: "preferences.lang", Value: "en"},
		{Key: "preferences.theme", Value: "light"},
	}}}
	assert.Equal(t, want, got)
}

func TestPreferencesUpdate_RejectsPathKeys(t *testing.T) {
	for _, key := range []string{"", "a.b", "$where"} {
		_, err := preferencesUpdate(map[string]string{key: "x"})
		assert.Error(t, err, "key %q", key)
	}
}

func TestDecodeUser(t *testing.T) {
	oid := bson.NewObjectID()

	tests := []struct {
		name string
		doc  bson.D
		want *models.User
	}{
		{
			name: "object id key",
			doc: bson.D{
				{Key: "_id", Value: oid},
				{Key: "name", Value: "Ned Stark"},
				{Key: "email", Value: "sean_bean@gameofthron.es"},
				{Key: "password", Value: "$2b$12$UREFwsRUoyF0CRqGNK0LzO0HM/jLhgUCNNIJ9RJAqMUQ74crlJ1Vu"},
			},
			want: &models.User{
				ID:       oid.Hex(),
				Name:     "Ned Stark",
				Email:    "sean_bean@gameofthron.es",
				Password: "$2b$12$UREFwsRUoyF0CRqGNK0LzO0HM/jLhgUCNNIJ9RJAqMUQ74crlJ1Vu",
			},
		},
		{
			name: "string key with preferences",
			doc: bson.D{
				{Key: "_id", Value: "5f0c4a3e-0000-4000-8000-000000000001"},
				{Key: "email", Value: "alice@x.com"},
				{Key: "name", Value: "Alice"},
				{Key: "password", Value: "pw"},
				{Key: "preferences", Value: bson.D{{Key: "theme", Value: "dark"}}},
			},
			want: &models.User{
				ID:          "5f0c4a3e-0000-4000-8000-000000000001",
				Email:       "alice@x.com",
				Name:        "Alice",
				Password:    "pw",
				Preferences: map[string]string{"theme": "dark"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := bson.Marshal(tt.doc)
			require.NoError(t, err)

			got, err := decodeUser(raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMongoCreate_FailedInsertKeepsID(t *testing.T) {
	client, err := mongo.Connect(options.Client().
		ApplyURI("mongodb://127.0.0.1:1/?connectTimeoutMS=50").
		SetServerSelectionTimeout(50 * time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	repo := NewMongoRepository(client.Database("accountstore_unreachable"))

	u := &models.User{Email: "alice@x.com", Name: "Alice"}
	err = repo.Create(context.Background(), u)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
	assert.Empty(t, u.ID)
}

func TestEmailFilter(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "email", Value: "alice@x.com"}}, emailFilter("alice@x.com"))
}

// newLiveMongoRepo connects to ACCOUNTSTORE_TEST_MONGO_URI and returns a
// repository over a throwaway database.
func newLiveMongoRepo(t *testing.T) *MongoRepository {
	t.Helper()

	uri := os.Getenv("ACCOUNTSTORE_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("ACCOUNTSTORE_TEST_MONGO_URI not set")
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db := client.Database("accountstore_test_" + uuid.NewString()[:8])
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	repo := NewMongoRepository(db)
	require.NoError(t, repo.EnsureIndexes(ctx))
	return repo
}

func TestMongo_Live(t *testing.T) {
	repo := newLiveMongoRepo(t)
	ctx := context.Background()

	alice := &models.User{Email: "alice@x.com", Name: "Alice", Password: "pw", Preferences: map[string]string{"theme": "dark"}}
	require.NoError(t, repo.Create(ctx, alice))
	assert.NotEmpty(t, alice.ID)

	impostor := &models.User{Email: "alice@x.com", Name: "Impostor"}
	err := repo.Create(ctx, impostor)
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
	assert.Empty(t, impostor.ID, "id is only set once the insert succeeds")

	ok, err := repo.MergePreferences(ctx, "alice@x.com", map[string]string{"theme": "light", "lang": "en"})
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.GetByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, map[string]string{"theme": "light", "lang": "en"}, got.Preferences)

	_, err = repo.MergePreferences(ctx, "ghost@x.com", map[string]string{"a": "1"})
	assert.ErrorIs(t, err, common.ErrorNotFound)

	ok, err = repo.Delete(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = repo.GetByEmail(ctx, "alice@x.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMongo_LiveObjectIDUser(t *testing.T) {
	repo := newLiveMongoRepo(t)
	ctx := context.Background()

	oid := bson.NewObjectID()
	_, err := repo.coll.InsertOne(ctx, bson.D{
		{Key: "_id", Value: oid},
		{Key: "name", Value: "Ned Stark"},
		{Key: "email", Value: "ned@x.com"},
		{Key: "password", Value: "pw"},
	})
	require.NoError(t, err)

	got, err := repo.GetByEmail(ctx, "ned@x.com")
	require.NoError(t, err)
	assert.Equal(t, oid.Hex(), got.ID)

	ok, err := repo.MergePreferences(ctx, "ned@x.com", map[string]string{"lang": "en"})
	require.NoError(t, err)
	assert.True(t, ok)

	got, err = repo.GetByEmail(ctx, "ned@x.com")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"lang": "en"}, got.Preferences)
}
