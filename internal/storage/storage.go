package storage

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// Collection names for every document kind the service stores.
const (
	WaysCollection           = "ways"
	UsersCollection          = "users"
	DayReportsCollection     = "dayReports"
	JobsDoneCollection       = "jobsDone"
	PlansCollection          = "plansForNextPeriod"
	ProblemsCollection       = "currentProblems"
	MentorCommentsCollection = "mentorComments"
)

// StorageError helps distinguish storage errors from everything else.
type StorageError string

func (e StorageError) Error() string {
	return string(e)
}

// ErrNotFound is returned when a document does not exist in its collection.
var ErrNotFound = StorageError("document not found")

// BatchCommitError reports a failed atomic commit. No document was mutated.
type BatchCommitError struct {
	Err error
}

func (e *BatchCommitError) Error() string {
	return fmt.Sprintf("batch commit failed, no documents were applied: %v", e.Err)
}

func (e *BatchCommitError) Unwrap() error {
	return e.Err
}

// Store is the document database contract the access layers depend on.
// Implementations must not degrade GetDocumentsByUuids into per-uuid gets,
// and must apply a Batch as a single all-or-nothing unit.
type Store interface {
	GetDocument(ctx context.Context, collection, uuid string) (bson.M, error)
	GetDocuments(ctx context.Context, collection string) ([]bson.M, error)
	GetDocumentsByUuids(ctx context.Context, collection string, uuids []string) ([]bson.M, error)
	CommitBatch(ctx context.Context, batch *Batch) error
}

type opKind int

const (
	opCreate opKind = iota
	opUpdate
	opDelete
)

// Operation is one enqueued document mutation intent.
type Operation struct {
	kind       opKind
	Collection string
	UUID       string
	Doc        bson.M
}

// Batch collects document mutation intents to be committed atomically.
// Intents are not visible to readers until CommitBatch succeeds, and none
// is applied if the commit fails. A Batch is not safe for concurrent use.
type Batch struct {
	ops []Operation
}

func NewBatch() *Batch {
	return &Batch{}
}

// Create enqueues insertion of a new document. The document must carry its
// uuid in the "uuid" field.
func (b *Batch) Create(collection string, doc bson.M) {
	uuid, _ := doc["uuid"].(string)
	b.ops = append(b.ops, Operation{kind: opCreate, Collection: collection, UUID: uuid, Doc: doc})
}

// Update enqueues a partial update. Only the fields present in partial are
// touched; absent fields keep their stored values.
func (b *Batch) Update(collection, uuid string, partial bson.M) {
	b.ops = append(b.ops, Operation{kind: opUpdate, Collection: collection, UUID: uuid, Doc: partial})
}

// Delete enqueues removal of one document.
func (b *Batch) Delete(collection, uuid string) {
	b.ops = append(b.ops, Operation{kind: opDelete, Collection: collection, UUID: uuid})
}

// Len reports the number of enqueued intents.
func (b *Batch) Len() int {
	return len(b.ops)
}

// Operations exposes the enqueued intents in order.
func (b *Batch) Operations() []Operation {
	return b.ops
}

// Kind reports the intent kind as a string, mostly for logs and tests.
func (o Operation) Kind() string {
	switch o.kind {
	case opCreate:
		return "create"
	case opUpdate:
		return "update"
	default:
		return "delete"
	}
}
