package repository

import (
	"context"

	"github.com/fekuna/textile-erp-service/internal/model"
	"github.com/fekuna/textile-erp-service/internal/notification/dto"
	"github.com/fekuna/textile-erp-service/pkg/apperror"
	"github.com/fekuna/textile-erp-service/pkg/database/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	messagesCollection = "whatsapp_messages"
	settingsCollection = "notification_settings"
)

type MessageRepository struct {
	coll *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{coll: db.Collection(messagesCollection)}
}

func (r *MessageRepository) Create(ctx context.Context, msg *model.WhatsAppMessage) error {
	_, err := r.coll.InsertOne(ctx, msg)
	return err
}

func (r *MessageRepository) FindAll(ctx context.Context, f *dto.MessageFilters) ([]model.WhatsAppMessage, int64, error) {
	filter := bson.M{}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}

	items := []model.WhatsAppMessage{}
	total, err := mongodb.FindPage(ctx, r.coll, filter, bson.D{{Key: "createdAt", Value: -1}}, f.Page, f.PageSize, &items)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *MessageRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperror.NotFound("message not found")
	}
	return nil
}

type SettingsRepository struct {
	coll *mongo.Collection
}

func NewSettingsRepository(db *mongo.Database) *SettingsRepository {
	return &SettingsRepository{coll: db.Collection(settingsCollection)}
}

func (r *SettingsRepository) Get(ctx context.Context) (*model.NotificationSettings, error) {
	var s model.NotificationSettings
	if err := r.coll.FindOne(ctx, bson.M{"_id": model.SettingsID}).Decode(&s); err != nil {
		if mongodb.IsNotFound(err) {
			return model.DefaultNotificationSettings(), nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SettingsRepository) Save(ctx context.Context, s *model.NotificationSettings) error {
	s.ID = model.SettingsID
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": model.SettingsID}, s, options.Replace().SetUpsert(true))
	return err
}
