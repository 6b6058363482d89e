package repository

import (
	"context"

	"github.com/fekuna/textile-erp-service/internal/customer/dto"
	"github.com/fekuna/textile-erp-service/internal/model"
	"github.com/fekuna/textile-erp-service/pkg/apperror"
	"github.com/fekuna/textile-erp-service/pkg/database/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const collectionName = "customers"

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(collectionName)}
}

func (r *MongoRepository) Create(ctx context.Context, c *model.Customer) error {
	_, err := r.coll.InsertOne(ctx, c)
	return err
}

func (r *MongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Customer, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoRepository) FindByName(ctx context.Context, name string) (*model.Customer, error) {
	return r.findOne(ctx, bson.M{"name": mongodb.Exact(name)})
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.M) (*model.Customer, error) {
	var c model.Customer
	if err := r.coll.FindOne(ctx, filter).Decode(&c); err != nil {
		if mongodb.IsNotFound(err) {
			return nil, apperror.NotFound("customer not found")
		}
		return nil, err
	}
	return &c, nil
}

func (r *MongoRepository) FindAll(ctx context.Context, f *dto.CustomerFilters) ([]model.Customer, int64, error) {
	items := []model.Customer{}
	total, err := mongodb.FindPage(ctx, r.coll, buildFilter(f), bson.D{{Key: "createdAt", Value: -1}}, f.Page, f.PageSize, &items)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func buildFilter(f *dto.CustomerFilters) bson.M {
	filter := bson.M{}
	and := bson.A{}

	if f.Type != "" {
		filter["type"] = f.Type
	}
	if f.City != "" {
		filter["city"] = f.City
	}
	if f.CreatedFrom != nil || f.CreatedTo != nil {
		created := bson.M{}
		if f.CreatedFrom != nil {
			created["$gte"] = *f.CreatedFrom
		}
		if f.CreatedTo != nil {
			created["$lt"] = *f.CreatedTo
		}
		filter["createdAt"] = created
	}
	if f.Search != "" {
		rx := mongodb.Contains(f.Search)
		and = append(and, bson.M{"$or": bson.A{
			bson.M{"name": rx},
			bson.M{"phone": rx},
			bson.M{"email": rx},
			bson.M{"city": rx},
		}})
	}
	if len(f.IDs) > 0 || len(f.Names) > 0 {
		anyOf := bson.A{}
		if len(f.IDs) > 0 {
			anyOf = append(anyOf, bson.M{"_id": bson.M{"$in": f.IDs}})
		}
		if len(f.Names) > 0 {
			// Names match case-insensitively, like FindByName.
			names := make(bson.A, 0, len(f.Names))
			for _, n := range f.Names {
				names = append(names, mongodb.Exact(n))
			}
			anyOf = append(anyOf, bson.M{"name": bson.M{"$in": names}})
		}
		and = append(and, bson.M{"$or": anyOf})
	}
	if len(and) > 0 {
		filter["$and"] = and
	}
	return filter
}

func (r *MongoRepository) Update(ctx context.Context, c *model.Customer) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperror.NotFound("customer not found")
	}
	return nil
}

func (r *MongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperror.NotFound("customer not found")
	}
	return nil
}
