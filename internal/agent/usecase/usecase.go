package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/textile-erp-service/internal/agent"
	"github.com/fekuna/textile-erp-service/internal/agent/dto"
	"github.com/fekuna/textile-erp-service/internal/model"
	"github.com/fekuna/textile-erp-service/pkg/apperror"
	"github.com/fekuna/textile-erp-service/pkg/logger"
)

type agentUseCase struct {
	repo   agent.Repository
	logger logger.ZapLogger
}

func NewAgentUseCase(repo agent.Repository, log logger.ZapLogger) agent.UseCase {
	return &agentUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *agentUseCase) CreateAgent(ctx context.Context, input *dto.AgentInput) (*model.Agent, error) {
	a := &model.Agent{Active: true}
	if err := applyInput(a, input); err != nil {
		return nil, err
	}
	a.Touch(time.Now())

	if err := uc.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (uc *agentUseCase) GetAgent(ctx context.Context, id string) (*model.Agent, error) {
	oid, err := model.ParseID(id)
	if err != nil {
		return nil, err
	}
	return uc.repo.FindByID(ctx, oid)
}

func (uc *agentUseCase) ListAgents(ctx context.Context, filters *dto.AgentFilters) ([]model.Agent, int64, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *agentUseCase) UpdateAgent(ctx context.Context, id string, input *dto.AgentInput) (*model.Agent, error) {
	oid, err := model.ParseID(id)
	if err != nil {
		return nil, err
	}
	a, err := uc.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if err := applyInput(a, input); err != nil {
		return nil, err
	}
	a.Touch(time.Now())

	if err := uc.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (uc *agentUseCase) DeleteAgent(ctx context.Context, id string) error {
	oid, err := model.ParseID(id)
	if err != nil {
		return err
	}
	return uc.repo.Delete(ctx, oid)
}

func applyInput(a *model.Agent, in *dto.AgentInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return apperror.Validation("name is required")
	}
	if in.CommissionRate < 0 || in.CommissionRate > 100 {
		return apperror.Validation("commissionRate must be between 0 and 100")
	}

	a.Name = name
	a.Phone = strings.TrimSpace(in.Phone)
	a.Email = strings.TrimSpace(in.Email)
	a.City = in.City
	a.CommissionRate = in.CommissionRate
	if in.Active != nil {
		a.Active = *in.Active
	}
	return nil
}
