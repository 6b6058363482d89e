package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/fekuna/textile-erp-service/pkg/pagination"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type Config struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// NewMongo connects, pings the primary and returns the configured database.
func NewMongo(ctx context.Context, cfg *Config) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, client.Database(cfg.Database), nil
}

// FindPage runs filter against coll, decodes the requested page into out and
// returns the total number of matching documents. pageSize <= 0 returns everything.
func FindPage(ctx context.Context, coll *mongo.Collection, filter any, sort bson.D, page, pageSize int, out any) (int64, error) {
	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, err
	}

	opts := options.Find()
	if len(sort) > 0 {
		opts.SetSort(sort)
	}
	if pageSize > 0 {
		opts.SetSkip(pagination.Offset(page, pageSize)).SetLimit(int64(pageSize))
	}

	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return 0, err
	}
	if err := cur.All(ctx, out); err != nil {
		return 0, err
	}
	return total, nil
}

// IsNotFound reports whether err is the driver's "no documents" error.
func IsNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// Contains builds a case-insensitive substring match for free-text search.
func Contains(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

// Exact builds a case-insensitive whole-value match.
func Exact(s string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(s) + "$", Options: "i"}
}
