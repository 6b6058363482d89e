package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/textile-erp-service/internal/admin"
	"github.com/fekuna/textile-erp-service/internal/admin/dto"
	"github.com/fekuna/textile-erp-service/internal/model"
	"github.com/fekuna/textile-erp-service/pkg/apperror"
	"github.com/fekuna/textile-erp-service/pkg/logger"
)

type adminUseCase struct {
	repo   admin.Repository
	logger logger.ZapLogger
}

func NewAdminUseCase(repo admin.Repository, log logger.ZapLogger) admin.UseCase {
	return &adminUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *adminUseCase) CreateAdmin(ctx context.Context, input *dto.AdminInput) (*model.Admin, error) {
	a := &model.Admin{Active: true}
	if err := applyInput(a, input); err != nil {
		return nil, err
	}
	a.Touch(time.Now())

	if err := uc.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (uc *adminUseCase) GetAdmin(ctx context.Context, id string) (*model.Admin, error) {
	oid, err := model.ParseID(id)
	if err != nil {
		return nil, err
	}
	return uc.repo.FindByID(ctx, oid)
}

func (uc *adminUseCase) ListAdmins(ctx context.Context, filters *dto.AdminFilters) ([]model.Admin, int64, error) {
	if filters.Role != "" && !model.IsValidAdminRole(filters.Role) {
		return nil, 0, apperror.Validation("invalid role: " + filters.Role)
	}
	return uc.repo.FindAll(ctx, filters)
}

func (uc *adminUseCase) UpdateAdmin(ctx context.Context, id string, input *dto.AdminInput) (*model.Admin, error) {
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

func (uc *adminUseCase) DeleteAdmin(ctx context.Context, id string) error {
	oid, err := model.ParseID(id)
	if err != nil {
		return err
	}
	return uc.repo.Delete(ctx, oid)
}

func applyInput(a *model.Admin, in *dto.AdminInput) error {
	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.Phone)
	if name == "" {
		return apperror.Validation("name is required")
	}
	if phone == "" {
		return apperror.Validation("phone is required")
	}
	role := in.Role
	if role == "" {
		role = model.AdminRoleStaff
	}
	if !model.IsValidAdminRole(role) {
		return apperror.Validation("role must be owner, manager or staff")
	}

	a.Name = name
	a.Phone = phone
	a.Role = role
	if in.Active != nil {
		a.Active = *in.Active
	}
	return nil
}
