package inmemory

import (
	"context"
	"sync"

	"github.com/Talgatov/MentorWay/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
)

// Store implements storage.Store in memory. It is used by tests and keeps
// the same contract as the Mongo implementation: multi-gets skip missing
// uuids, and a batch either applies completely or not at all.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]bson.M
	commitErr   error
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		collections: make(map[string]map[string]bson.M),
	}
}

// FailCommits makes every subsequent CommitBatch fail with err without
// applying anything. Pass nil to restore normal behavior.
func (s *Store) FailCommits(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commitErr = err
}

// Seed inserts a document directly, bypassing batches. Test setup only.
func (s *Store) Seed(collection string, doc bson.M) {
	s.mu.Lock()
	defer s.mu.Unlock()
	uuid, _ := doc["uuid"].(string)
	s.coll(collection)[uuid] = cloneDoc(doc)
}

// Count reports how many documents a collection holds.
func (s *Store) Count(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections[collection])
}

func (s *Store) coll(name string) map[string]bson.M {
	c, ok := s.collections[name]
	if !ok {
		c = make(map[string]bson.M)
		s.collections[name] = c
	}
	return c
}

func (s *Store) GetDocument(ctx context.Context, collection, uuid string) (bson.M, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.collections[collection][uuid]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return cloneDoc(doc), nil
}

func (s *Store) GetDocuments(ctx context.Context, collection string) ([]bson.M, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]bson.M, 0, len(s.collections[collection]))
	for _, doc := range s.collections[collection] {
		docs = append(docs, cloneDoc(doc))
	}
	return docs, nil
}

func (s *Store) GetDocumentsByUuids(ctx context.Context, collection string, uuids []string) ([]bson.M, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]bson.M, 0, len(uuids))
	for _, uuid := range uuids {
		if doc, ok := s.collections[collection][uuid]; ok {
			docs = append(docs, cloneDoc(doc))
		}
	}
	return docs, nil
}

// CommitBatch applies the batch under one lock so readers never observe a
// partially applied batch. A forced failure leaves the store untouched.
func (s *Store) CommitBatch(ctx context.Context, batch *storage.Batch) error {
	if batch.Len() == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.commitErr != nil {
		return &storage.BatchCommitError{Err: s.commitErr}
	}

	for _, op := range batch.Operations() {
		coll := s.coll(op.Collection)
		switch op.Kind() {
		case "create":
			coll[op.UUID] = cloneDoc(op.Doc)
		case "update":
			existing, ok := coll[op.UUID]
			if !ok {
				// Matches Mongo's UpdateOne on a missing document: no match,
				// no error, nothing written.
				continue
			}
			for key, value := range op.Doc {
				existing[key] = cloneValue(value)
			}
		case "delete":
			delete(coll, op.UUID)
		}
	}
	return nil
}

func cloneDoc(doc bson.M) bson.M {
	out := make(bson.M, len(doc))
	for key, value := range doc {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value interface{}) interface{} {
	switch v := value.(type) {
	case bson.M:
		return cloneDoc(v)
	case bson.A:
		out := make(bson.A, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
