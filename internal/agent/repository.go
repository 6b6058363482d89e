// Package agent keeps the field sales agent directory.
package agent

import (
	"context"

	"github.com/fekuna/textile-erp-service/internal/agent/dto"
	"github.com/fekuna/textile-erp-service/internal/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Repository interface {
	Create(ctx context.Context, agent *model.Agent) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Agent, error)
	FindAll(ctx context.Context, filters *dto.AgentFilters) ([]model.Agent, int64, error)
	Update(ctx context.Context, agent *model.Agent) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
