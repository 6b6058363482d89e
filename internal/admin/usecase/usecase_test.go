package usecase

import (
	"context"
	"testing"

	"github.com/fekuna/textile-erp-service/internal/admin/dto"
	"github.com/fekuna/textile-erp-service/internal/model"
	"github.com/fekuna/textile-erp-service/internal/testutil"
	"github.com/fekuna/textile-erp-service/pkg/apperror"
	"github.com/fekuna/textile-erp-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminDefaults(t *testing.T) {
	uc := NewAdminUseCase(testutil.NewAdminRepo(), logger.NewNop())
	ctx := context.Background()

	a, err := uc.CreateAdmin(ctx, &dto.AdminInput{Name: "Sana", Phone: "+92 300 0000000"})
	require.NoError(t, err)
	assert.True(t, a.Active)
	assert.Equal(t, model.AdminRoleStaff, a.Role)

	inactive := false
	_, err = uc.UpdateAdmin(ctx, a.ID.Hex(), &dto.AdminInput{Name: "Sana", Phone: a.Phone, Role: model.AdminRoleOwner, Active: &inactive})
	require.NoError(t, err)

	active := true
	items, _, err := uc.ListAdmins(ctx, &dto.AdminFilters{Active: &active})
	require.NoError(t, err)
	assert.Empty(t, items)

	_, _, err = uc.ListAdmins(ctx, &dto.AdminFilters{Role: "root"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestAdminValidation(t *testing.T) {
	uc := NewAdminUseCase(testutil.NewAdminRepo(), logger.NewNop())

	for _, in := range []dto.AdminInput{
		{Phone: "123"},
		{Name: "Sana"},
		{Name: "Sana", Phone: "123", Role: "root"},
	} {
		_, err := uc.CreateAdmin(context.Background(), &in)
		assert.True(t, apperror.Is(err, apperror.KindValidation), "input %+v: %v", in, err)
	}
}
