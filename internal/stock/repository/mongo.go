package repository

import (
	"context"

	"github.com/fekuna/textile-erp-service/internal/model"
	"github.com/fekuna/textile-erp-service/internal/stock/dto"
	"github.com/fekuna/textile-erp-service/pkg/apperror"
	"github.com/fekuna/textile-erp-service/pkg/database/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const collectionName = "stocks"

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(collectionName)}
}

func (r *MongoRepository) Create(ctx context.Context, s *model.Stock) error {
	_, err := r.coll.InsertOne(ctx, s)
	return err
}

func (r *MongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Stock, error) {
	var s model.Stock
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if err != nil {
		if mongodb.IsNotFound(err) {
			return nil, apperror.NotFound("stock not found")
		}
		return nil, err
	}
	return &s, nil
}

func (r *MongoRepository) FindAll(ctx context.Context, f *dto.StockFilters) ([]model.Stock, int64, error) {
	filter := bson.M{}
	if f.Type != "" {
		filter["type"] = f.Type
	}
	switch {
	case f.Status != "":
		filter["status"] = f.Status
	case len(f.Statuses) > 0:
		filter["status"] = bson.M{"$in": f.Statuses}
	}
	var byProduct bson.A
	if f.ProductID != "" {
		if oid, err := primitive.ObjectIDFromHex(f.ProductID); err == nil {
			byProduct = append(byProduct, bson.M{"productId": oid})
		}
	}
	if f.ProductName != "" {
		byProduct = append(byProduct, bson.M{"productName": mongodb.Exact(f.ProductName)})
	}
	if len(byProduct) > 0 {
		filter["$and"] = bson.A{bson.M{"$or": byProduct}}
	}
	if f.Search != "" {
		rx := mongodb.Contains(f.Search)
		filter["$or"] = bson.A{
			bson.M{"productName": rx},
			bson.M{"batchNumber": rx},
			bson.M{"quality": rx},
			bson.M{"location": rx},
			bson.M{"variants.color": rx},
		}
	}

	items := []model.Stock{}
	total, err := mongodb.FindPage(ctx, r.coll, filter, bson.D{{Key: "createdAt", Value: -1}}, f.Page, f.PageSize, &items)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *MongoRepository) Update(ctx context.Context, s *model.Stock) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": s.ID}, s)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperror.NotFound("stock not found")
	}
	return nil
}

func (r *MongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperror.NotFound("stock not found")
	}
	return nil
}
