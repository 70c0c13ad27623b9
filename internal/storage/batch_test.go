package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestBatch_KeepsOperationOrder(t *testing.T) {
	batch := NewBatch()
	batch.Create(WaysCollection, bson.M{"uuid": "w1"})
	batch.Update(UsersCollection, "u1", bson.M{"ownWays": []string{"w1"}})
	batch.Delete(DayReportsCollection, "r1")

	require.Equal(t, 3, batch.Len())
	ops := batch.Operations()

	assert.Equal(t, "create", ops[0].Kind())
	assert.Equal(t, WaysCollection, ops[0].Collection)
	assert.Equal(t, "w1", ops[0].UUID)

	assert.Equal(t, "update", ops[1].Kind())
	assert.Equal(t, "u1", ops[1].UUID)

	assert.Equal(t, "delete", ops[2].Kind())
	assert.Equal(t, "r1", ops[2].UUID)
}

func TestBatch_CreateReadsUuidFromDocument(t *testing.T) {
	batch := NewBatch()
	batch.Create(UsersCollection, bson.M{"uuid": "u9", "name": "Alice"})

	ops := batch.Operations()
	require.Len(t, ops, 1)
	assert.Equal(t, "u9", ops[0].UUID)
}

func TestBatchCommitError_Unwraps(t *testing.T) {
	cause := errors.New("no reachable servers")
	err := &BatchCommitError{Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "no reachable servers")
}
