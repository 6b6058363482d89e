package repository

import (
	"context"

	"github.com/fekuna/textile-erp-service/internal/model"
	"github.com/fekuna/textile-erp-service/internal/order/dto"
	"github.com/fekuna/textile-erp-service/pkg/apperror"
	"github.com/fekuna/textile-erp-service/pkg/database/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "orders"

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(collectionName)}
}

func (r *MongoRepository) Create(ctx context.Context, o *model.Order) error {
	_, err := r.coll.InsertOne(ctx, o)
	return err
}

func (r *MongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Order, error) {
	var o model.Order
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&o); err != nil {
		if mongodb.IsNotFound(err) {
			return nil, apperror.NotFound("order not found")
		}
		return nil, err
	}
	return &o, nil
}

func (r *MongoRepository) FindAll(ctx context.Context, f *dto.OrderFilters) ([]model.Order, int64, error) {
	filter := bson.M{}
	and := bson.A{}

	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.CustomerID != nil {
		filter["customerId"] = *f.CustomerID
	}
	if f.Customer != "" {
		filter["customer"] = mongodb.Exact(f.Customer)
	}
	if f.From != nil || f.To != nil {
		dateRange := bson.M{}
		if f.From != nil {
			dateRange["$gte"] = *f.From
		}
		if f.To != nil {
			dateRange["$lte"] = *f.To
		}
		filter["orderDate"] = dateRange
	}
	if f.ProductID != nil || f.ProductName != "" {
		byProduct := bson.A{}
		if f.ProductID != nil {
			byProduct = append(byProduct, bson.M{"items.productId": *f.ProductID})
		}
		if f.ProductName != "" {
			byProduct = append(byProduct, bson.M{"items.product": mongodb.Exact(f.ProductName)})
		}
		and = append(and, bson.M{"$or": byProduct})
	}
	if f.Search != "" {
		rx := mongodb.Contains(f.Search)
		and = append(and, bson.M{"$or": bson.A{
			bson.M{"customer": rx},
			bson.M{"notes": rx},
			bson.M{"items.product": rx},
			bson.M{"items.color": rx},
		}})
	}
	if len(and) > 0 {
		filter["$and"] = and
	}

	items := []model.Order{}
	total, err := mongodb.FindPage(ctx, r.coll, filter, bson.D{{Key: "orderDate", Value: -1}, {Key: "orderNumber", Value: -1}}, f.Page, f.PageSize, &items)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *MongoRepository) Update(ctx context.Context, o *model.Order) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": o.ID}, o)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperror.NotFound("order not found")
	}
	return nil
}

func (r *MongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperror.NotFound("order not found")
	}
	return nil
}

func (r *MongoRepository) RenameProductItems(ctx context.Context, productID primitive.ObjectID, oldName, newName string) (int64, error) {
	var modified int64

	byName := mongodb.Exact(oldName)
	res, err := r.coll.UpdateMany(ctx,
		bson.M{"items.product": byName},
		bson.M{"$set": bson.M{
			"items.$[it].product":   newName,
			"items.$[it].productId": productID,
		}},
		options.Update().SetArrayFilters(options.ArrayFilters{
			Filters: []interface{}{bson.M{"it.product": byName}},
		}),
	)
	if err != nil {
		return 0, err
	}
	modified += res.ModifiedCount

	res, err = r.coll.UpdateMany(ctx,
		bson.M{"items": bson.M{"$elemMatch": bson.M{"productId": productID, "product": bson.M{"$ne": newName}}}},
		bson.M{"$set": bson.M{"items.$[it].product": newName}},
		options.Update().SetArrayFilters(options.ArrayFilters{
			Filters: []interface{}{bson.M{"it.productId": productID, "it.product": bson.M{"$ne": newName}}},
		}),
	)
	if err != nil {
		return modified, err
	}
	return modified + res.ModifiedCount, nil
}
