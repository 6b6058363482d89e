package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fekuna/textile-erp-service/internal/model"
	"github.com/fekuna/textile-erp-service/internal/notification/dto"
	"github.com/fekuna/textile-erp-service/internal/testutil"
	"github.com/fekuna/textile-erp-service/pkg/apperror"
	"github.com/fekuna/textile-erp-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) Send(ctx context.Context, phone, message string) error {
	args := m.Called(ctx, phone, message)
	return args.Error(0)
}

type fixture struct {
	admins   *testutil.AdminRepo
	messages *testutil.MessageRepo
	settings *testutil.SettingsRepo
	gateway  *mockGateway
	uc       *notificationUseCase
}

func newFixture() *fixture {
	f := &fixture{
		admins:   testutil.NewAdminRepo(),
		messages: testutil.NewMessageRepo(),
		settings: testutil.NewSettingsRepo(),
		gateway:  &mockGateway{},
	}
	log := logger.NewNop()
	d := NewDispatcher(f.admins, f.messages, f.settings, f.gateway, log)
	f.uc = NewNotificationUseCase(f.messages, f.settings, d, log).(*notificationUseCase)
	return f
}

func (f *fixture) addAdmin(t *testing.T, name, phone string, active bool) {
	t.Helper()
	a := &model.Admin{Name: name, Phone: phone, Role: model.AdminRoleStaff, Active: active}
	a.Touch(time.Now())
	require.NoError(t, f.admins.Create(context.Background(), a))
}

func (f *fixture) lastMessage(t *testing.T) model.WhatsAppMessage {
	t.Helper()
	items, _, err := f.messages.FindAll(context.Background(), &dto.MessageFilters{})
	require.NoError(t, err)
	require.NotEmpty(t, items)
	return items[0]
}

func TestSendManualToAllActiveAdmins(t *testing.T) {
	f := newFixture()
	f.addAdmin(t, "Sana", "+923001111111", true)
	f.addAdmin(t, "Omar", "+923002222222", true)
	f.addAdmin(t, "Old", "+923003333333", false)

	f.gateway.On("Send", mock.Anything, "+923001111111", "Shop closes early").Return(nil).Once()
	f.gateway.On("Send", mock.Anything, "+923002222222", "Shop closes early").Return(nil).Once()

	res, err := f.uc.SendManual(context.Background(), &dto.SendMessageInput{Message: "  Shop closes early "})
	require.NoError(t, err)
	assert.Equal(t, model.MessageStatusSent, res.Status)
	assert.Equal(t, 2, res.Delivered)
	assert.Zero(t, res.Failed)
	f.gateway.AssertExpectations(t)

	msg := f.lastMessage(t)
	assert.Equal(t, model.CategoryManual, msg.Category)
	assert.Equal(t, 2, msg.RecipientCount)
	assert.Equal(t, model.MessageStatusSent, msg.Status)
}

func TestDispatchPartialAndFailed(t *testing.T) {
	f := newFixture()
	f.addAdmin(t, "Sana", "+923001111111", true)
	f.addAdmin(t, "Omar", "+923002222222", true)

	f.gateway.On("Send", mock.Anything, "+923001111111", mock.Anything).Return(nil).Once()
	f.gateway.On("Send", mock.Anything, "+923002222222", mock.Anything).Return(errors.New("instance offline")).Once()

	d := f.uc.dispatcher
	res, err := d.Dispatch(context.Background(), model.CategoryNewOrder, "New order #1")
	require.NoError(t, err)
	assert.Equal(t, model.MessageStatusPartial, res.Status)
	assert.Equal(t, 1, res.Delivered)
	assert.Equal(t, 1, res.Failed)

	f.gateway.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("instance offline")).Twice()
	res, err = d.Dispatch(context.Background(), model.CategoryNewOrder, "New order #2")
	require.NoError(t, err)
	assert.Equal(t, model.MessageStatusFailed, res.Status)
	assert.Equal(t, 2, res.Failed)

	msg := f.lastMessage(t)
	assert.Equal(t, model.MessageStatusFailed, msg.Status)
	assert.Zero(t, msg.RecipientCount)
	assert.Equal(t, 2, msg.FailedCount)
	f.gateway.AssertExpectations(t)
}

func TestDispatchSkipped(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	res, err := f.uc.dispatcher.Dispatch(ctx, model.CategoryLowStock, "Low stock: Lawn")
	require.NoError(t, err)
	assert.Equal(t, model.MessageStatusSkipped, res.Status)

	f.addAdmin(t, "Sana", "+923001111111", true)
	off := false
	_, err = f.uc.UpdateSettings(ctx, &dto.SettingsInput{LowStock: &off})
	require.NoError(t, err)

	res, err = f.uc.dispatcher.Dispatch(ctx, model.CategoryLowStock, "Low stock: Silk")
	require.NoError(t, err)
	assert.Equal(t, model.MessageStatusSkipped, res.Status)
	f.gateway.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)

	skipped, total, err := f.messages.FindAll(ctx, &dto.MessageFilters{Status: model.MessageStatusSkipped})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, "Low stock: Silk", skipped[0].Message)
}

func TestUpdateSettingsIsPartial(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	off := false
	s, err := f.uc.UpdateSettings(ctx, &dto.SettingsInput{NewCustomer: &off})
	require.NoError(t, err)
	assert.False(t, s.NewCustomer)
	assert.True(t, s.NewOrder)
	assert.False(t, s.UpdatedAt.IsZero())

	on := true
	_, err = f.uc.UpdateSettings(ctx, &dto.SettingsInput{Manual: &on})
	require.NoError(t, err)

	got, err := f.uc.GetSettings(ctx)
	require.NoError(t, err)
	assert.False(t, got.NewCustomer)
	assert.True(t, got.Manual)
	assert.Equal(t, model.SettingsID, got.ID)
}

func TestSendManualRequiresMessage(t *testing.T) {
	f := newFixture()
	_, err := f.uc.SendManual(context.Background(), &dto.SendMessageInput{Message: "   "})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	err = f.uc.DeleteMessage(context.Background(), "nope")
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}
