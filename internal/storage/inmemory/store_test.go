package inmemory

import (
	"context"
	"errors"
	"testing"

	"github.com/Talgatov/MentorWay/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestCommitBatch_AppliesOperationsInOrder(t *testing.T) {
	store := New()

	batch := storage.NewBatch()
	batch.Create(storage.WaysCollection, bson.M{"uuid": "w1", "name": "first"})
	batch.Update(storage.WaysCollection, "w1", bson.M{"name": "renamed"})
	require.NoError(t, store.CommitBatch(context.Background(), batch))

	doc, err := store.GetDocument(context.Background(), storage.WaysCollection, "w1")
	require.NoError(t, err)
	assert.Equal(t, "renamed", doc["name"])
}

func TestCommitBatch_DeleteRemovesDocument(t *testing.T) {
	store := New()
	store.Seed(storage.WaysCollection, bson.M{"uuid": "w1"})

	batch := storage.NewBatch()
	batch.Delete(storage.WaysCollection, "w1")
	require.NoError(t, store.CommitBatch(context.Background(), batch))

	_, err := store.GetDocument(context.Background(), storage.WaysCollection, "w1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCommitBatch_ForcedFailureAppliesNothing(t *testing.T) {
	store := New()
	store.Seed(storage.WaysCollection, bson.M{"uuid": "w1", "name": "original"})
	store.FailCommits(errors.New("transient"))

	batch := storage.NewBatch()
	batch.Update(storage.WaysCollection, "w1", bson.M{"name": "changed"})
	batch.Create(storage.UsersCollection, bson.M{"uuid": "u1"})

	err := store.CommitBatch(context.Background(), batch)
	require.Error(t, err)

	var commitErr *storage.BatchCommitError
	assert.True(t, errors.As(err, &commitErr))

	doc, err := store.GetDocument(context.Background(), storage.WaysCollection, "w1")
	require.NoError(t, err)
	assert.Equal(t, "original", doc["name"])
	assert.Equal(t, 0, store.Count(storage.UsersCollection))
}

func TestUpdateOnMissingDocumentIsNoOp(t *testing.T) {
	store := New()

	batch := storage.NewBatch()
	batch.Update(storage.WaysCollection, "ghost", bson.M{"name": "whatever"})
	require.NoError(t, store.CommitBatch(context.Background(), batch))

	assert.Equal(t, 0, store.Count(storage.WaysCollection))
}

func TestGetDocument_ReturnsIsolatedCopy(t *testing.T) {
	store := New()
	store.Seed(storage.WaysCollection, bson.M{"uuid": "w1", "tags": []string{"go"}})

	doc, err := store.GetDocument(context.Background(), storage.WaysCollection, "w1")
	require.NoError(t, err)

	// Mutating the returned document must not leak into the store.
	doc["uuid"] = "hacked"
	tags := doc["tags"].([]string)
	tags[0] = "mutated"

	fresh, err := store.GetDocument(context.Background(), storage.WaysCollection, "w1")
	require.NoError(t, err)
	assert.Equal(t, "w1", fresh["uuid"])
	assert.Equal(t, []string{"go"}, fresh["tags"])
}

func TestGetDocumentsByUuids_SkipsMissing(t *testing.T) {
	store := New()
	store.Seed(storage.UsersCollection, bson.M{"uuid": "u1"})
	store.Seed(storage.UsersCollection, bson.M{"uuid": "u2"})

	docs, err := store.GetDocumentsByUuids(context.Background(), storage.UsersCollection, []string{"u1", "ghost", "u2"})
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestGetDocuments_ReturnsAll(t *testing.T) {
	store := New()
	store.Seed(storage.UsersCollection, bson.M{"uuid": "u1"})
	store.Seed(storage.UsersCollection, bson.M{"uuid": "u2"})

	docs, err := store.GetDocuments(context.Background(), storage.UsersCollection)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}
