package repository

import (
	"context"

	"github.com/fekuna/textile-erp-service/internal/model"
	"github.com/fekuna/textile-erp-service/internal/product/dto"
	"github.com/fekuna/textile-erp-service/pkg/apperror"
	"github.com/fekuna/textile-erp-service/pkg/database/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const collectionName = "products"

var sortFields = map[string]string{
	"name":      "name",
	"sku":       "sku",
	"category":  "category",
	"createdAt": "createdAt",
}

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(collectionName)}
}

func (r *MongoRepository) Create(ctx context.Context, p *model.Product) error {
	_, err := r.coll.InsertOne(ctx, p)
	return err
}

func (r *MongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error) {
	var p model.Product
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if mongodb.IsNotFound(err) {
			return nil, apperror.NotFound("product not found")
		}
		return nil, err
	}
	return &p, nil
}

func (r *MongoRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int64, error) {
	filter := bson.M{}
	if f.Category != "" {
		filter["category"] = mongodb.Exact(f.Category)
	}
	if len(f.IDs) > 0 {
		filter["_id"] = bson.M{"$in": f.IDs}
	}
	if f.SearchQuery != "" {
		rx := mongodb.Contains(f.SearchQuery)
		filter["$or"] = bson.A{
			bson.M{"name": rx},
			bson.M{"sku": rx},
			bson.M{"category": rx},
			bson.M{"tags": rx},
		}
	}

	field, ok := sortFields[f.SortBy]
	if !ok {
		field = "createdAt"
	}
	dir := -1
	if f.SortOrder == "asc" {
		dir = 1
	}

	items := []model.Product{}
	total, err := mongodb.FindPage(ctx, r.coll, filter, bson.D{{Key: field, Value: dir}}, f.Page, f.PageSize, &items)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *MongoRepository) Update(ctx context.Context, p *model.Product) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperror.NotFound("product not found")
	}
	return nil
}

func (r *MongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperror.NotFound("product not found")
	}
	return nil
}
