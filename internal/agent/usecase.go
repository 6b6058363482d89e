package agent

import (
	"context"

	"github.com/fekuna/textile-erp-service/internal/agent/dto"
	"github.com/fekuna/textile-erp-service/internal/model"
)

type UseCase interface {
	CreateAgent(ctx context.Context, input *dto.AgentInput) (*model.Agent, error)
	GetAgent(ctx context.Context, id string) (*model.Agent, error)
	ListAgents(ctx context.Context, filters *dto.AgentFilters) ([]model.Agent, int64, error)
	UpdateAgent(ctx context.Context, id string, input *dto.AgentInput) (*model.Agent, error)
	DeleteAgent(ctx context.Context, id string) error
}
