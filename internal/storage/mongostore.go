package storage

import (
	"context"
	"errors"

	"github.com/Talgatov/MentorWay/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store on top of a MongoDB database. Documents are
// keyed by their "uuid" field; Mongo's own _id is stripped on every read so
// the schema layer sees exactly the stored record.
type MongoStore struct {
	db     *mongo.Database
	client *mongo.Client
}

// NewMongoStore creates a store over a connected database.
func NewMongoStore(client *mongo.Client, db *mongo.Database) *MongoStore {
	return &MongoStore{db: db, client: client}
}

var withoutID = bson.M{"_id": 0}

// GetDocument fetches one raw document by uuid.
func (s *MongoStore) GetDocument(ctx context.Context, collection, uuid string) (bson.M, error) {
	var doc bson.M
	err := s.db.Collection(collection).
		FindOne(ctx, bson.M{"uuid": uuid}, options.FindOne().SetProjection(withoutID)).
		Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		logger.Log.WithError(err).WithField("collection", collection).Error("Failed to fetch document")
		return nil, err
	}
	return doc, nil
}

// GetDocuments fetches every raw document in a collection.
func (s *MongoStore) GetDocuments(ctx context.Context, collection string) ([]bson.M, error) {
	cursor, err := s.db.Collection(collection).Find(ctx, bson.M{}, options.Find().SetProjection(withoutID))
	if err != nil {
		logger.Log.WithError(err).WithField("collection", collection).Error("Failed to fetch documents")
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// GetDocumentsByUuids fetches many documents in a single $in query.
// Missing uuids are simply absent from the result; the caller decides
// whether that is a dangling reference.
func (s *MongoStore) GetDocumentsByUuids(ctx context.Context, collection string, uuids []string) ([]bson.M, error) {
	if len(uuids) == 0 {
		return []bson.M{}, nil
	}

	filter := bson.M{"uuid": bson.M{"$in": uuids}}
	cursor, err := s.db.Collection(collection).Find(ctx, filter, options.Find().SetProjection(withoutID))
	if err != nil {
		logger.Log.WithError(err).WithField("collection", collection).Error("Failed to fetch documents by uuids")
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// CommitBatch applies every enqueued intent inside one transaction. Either
// all intents apply or none does; the store never retries on its own.
func (s *MongoStore) CommitBatch(ctx context.Context, batch *Batch) error {
	if batch.Len() == 0 {
		return nil
	}

	session, err := s.client.StartSession()
	if err != nil {
		return &BatchCommitError{Err: err}
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		for _, op := range batch.Operations() {
			coll := s.db.Collection(op.Collection)
			switch op.Kind() {
			case "create":
				if _, err := coll.InsertOne(sc, op.Doc); err != nil {
					return nil, err
				}
			case "update":
				filter := bson.M{"uuid": op.UUID}
				if _, err := coll.UpdateOne(sc, filter, bson.M{"$set": op.Doc}); err != nil {
					return nil, err
				}
			case "delete":
				if _, err := coll.DeleteOne(sc, bson.M{"uuid": op.UUID}); err != nil {
					return nil, err
				}
			}
		}
		return nil, nil
	})
	if err != nil {
		logger.Log.WithError(err).WithField("ops", batch.Len()).Error("Batch commit failed")
		return &BatchCommitError{Err: err}
	}

	logger.Log.WithField("ops", batch.Len()).Info("Batch committed")
	return nil
}

// EnsureIndexes creates the unique uuid index for every collection.
// Call once during application startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) {
	collections := []string{
		WaysCollection,
		UsersCollection,
		DayReportsCollection,
		JobsDoneCollection,
		PlansCollection,
		ProblemsCollection,
		MentorCommentsCollection,
	}

	for _, name := range collections {
		_, err := db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "uuid", Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			logger.Log.WithError(err).WithField("collection", name).Warn("Failed to create uuid index")
		}
	}
}
