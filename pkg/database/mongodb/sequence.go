package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Sequencer hands out monotonically increasing numbers per named sequence.
type Sequencer interface {
	Next(ctx context.Context, name string) (int64, error)
}

type counterDoc struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}

// CounterSequencer keeps one document per sequence in the counters collection
// and increments it atomically with findOneAndUpdate.
type CounterSequencer struct {
	coll *mongo.Collection
}

func NewCounterSequencer(db *mongo.Database) *CounterSequencer {
	return &CounterSequencer{coll: db.Collection("counters")}
}

func (s *CounterSequencer) Next(ctx context.Context, name string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc counterDoc
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, err
	}
	return doc.Seq, nil
}
