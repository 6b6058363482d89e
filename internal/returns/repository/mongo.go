package repository

import (
	"context"

	"github.com/fekuna/textile-erp-service/internal/model"
	"github.com/fekuna/textile-erp-service/internal/returns/dto"
	"github.com/fekuna/textile-erp-service/pkg/apperror"
	"github.com/fekuna/textile-erp-service/pkg/database/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const collectionName = "returns"

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(collectionName)}
}

func (r *MongoRepository) Create(ctx context.Context, ret *model.Return) error {
	_, err := r.coll.InsertOne(ctx, ret)
	return err
}

func (r *MongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Return, error) {
	var ret model.Return
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&ret); err != nil {
		if mongodb.IsNotFound(err) {
			return nil, apperror.NotFound("return not found")
		}
		return nil, err
	}
	return &ret, nil
}

func (r *MongoRepository) FindAll(ctx context.Context, f *dto.ReturnFilters) ([]model.Return, int64, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.OrderID != "" {
		if oid, err := primitive.ObjectIDFromHex(f.OrderID); err == nil {
			filter["orderId"] = oid
		}
	}
	if f.Search != "" {
		rx := mongodb.Contains(f.Search)
		filter["$or"] = bson.A{
			bson.M{"returnId": rx},
			bson.M{"customer": rx},
			bson.M{"product": rx},
			bson.M{"reason": rx},
		}
	}

	items := []model.Return{}
	total, err := mongodb.FindPage(ctx, r.coll, filter, bson.D{{Key: "createdAt", Value: -1}}, f.Page, f.PageSize, &items)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *MongoRepository) Update(ctx context.Context, ret *model.Return) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": ret.ID}, ret)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperror.NotFound("return not found")
	}
	return nil
}

func (r *MongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperror.NotFound("return not found")
	}
	return nil
}
