package usecase

import (
	"context"
	"testing"

	"github.com/fekuna/textile-erp-service/internal/agent/dto"
	"github.com/fekuna/textile-erp-service/internal/testutil"
	"github.com/fekuna/textile-erp-service/pkg/apperror"
	"github.com/fekuna/textile-erp-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgentLifecycle(t *testing.T) {
	uc := NewAgentUseCase(testutil.NewAgentRepo(), logger.NewNop())
	ctx := context.Background()

	a, err := uc.CreateAgent(ctx, &dto.AgentInput{Name: " Bilal ", City: "Multan", CommissionRate: 2.5})
	require.NoError(t, err)
	assert.Equal(t, "Bilal", a.Name)
	assert.True(t, a.Active)

	_, err = uc.UpdateAgent(ctx, a.ID.Hex(), &dto.AgentInput{Name: "Bilal", CommissionRate: 101})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	items, total, err := uc.ListAgents(ctx, &dto.AgentFilters{City: "Multan"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, 2.5, items[0].CommissionRate)

	require.NoError(t, uc.DeleteAgent(ctx, a.ID.Hex()))
	_, err = uc.GetAgent(ctx, a.ID.Hex())
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}
