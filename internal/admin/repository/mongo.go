package repository

import (
	"context"

	"github.com/fekuna/textile-erp-service/internal/admin/dto"
	"github.com/fekuna/textile-erp-service/internal/model"
	"github.com/fekuna/textile-erp-service/pkg/apperror"
	"github.com/fekuna/textile-erp-service/pkg/database/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const collectionName = "admins"

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(collectionName)}
}

func (r *MongoRepository) Create(ctx context.Context, a *model.Admin) error {
	_, err := r.coll.InsertOne(ctx, a)
	return err
}

func (r *MongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Admin, error) {
	var a model.Admin
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if mongodb.IsNotFound(err) {
			return nil, apperror.NotFound("admin not found")
		}
		return nil, err
	}
	return &a, nil
}

func (r *MongoRepository) FindAll(ctx context.Context, f *dto.AdminFilters) ([]model.Admin, int64, error) {
	filter := bson.M{}
	if f.Role != "" {
		filter["role"] = f.Role
	}
	if f.Active != nil {
		filter["active"] = *f.Active
	}
	if f.Search != "" {
		rx := mongodb.Contains(f.Search)
		filter["$or"] = bson.A{bson.M{"name": rx}, bson.M{"phone": rx}}
	}

	items := []model.Admin{}
	total, err := mongodb.FindPage(ctx, r.coll, filter, bson.D{{Key: "createdAt", Value: -1}}, f.Page, f.PageSize, &items)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *MongoRepository) Update(ctx context.Context, a *model.Admin) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": a.ID}, a)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperror.NotFound("admin not found")
	}
	return nil
}

func (r *MongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperror.NotFound("admin not found")
	}
	return nil
}
