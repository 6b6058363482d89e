package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/textile-erp-service/internal/model"
	"github.com/fekuna/textile-erp-service/internal/notification"
	"github.com/fekuna/textile-erp-service/internal/order"
	"github.com/fekuna/textile-erp-service/internal/returns"
	"github.com/fekuna/textile-erp-service/internal/returns/dto"
	"github.com/fekuna/textile-erp-service/pkg/apperror"
	"github.com/fekuna/textile-erp-service/pkg/database/mongodb"
	"github.com/fekuna/textile-erp-service/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const returnSequence = "returns"

type returnUseCase struct {
	repo      returns.Repository
	orders    order.Repository
	seq       mongodb.Sequencer
	publisher notification.Publisher
	logger    logger.ZapLogger
}

func NewReturnUseCase(repo returns.Repository, orders order.Repository, seq mongodb.Sequencer, publisher notification.Publisher, log logger.ZapLogger) returns.UseCase {
	return &returnUseCase{
		repo:      repo,
		orders:    orders,
		seq:       seq,
		publisher: publisher,
		logger:    log,
	}
}

func (uc *returnUseCase) CreateReturn(ctx context.Context, input *dto.CreateReturnInput) (*model.Return, error) {
	if input.Quantity <= 0 {
		return nil, apperror.Validation("quantity must be greater than zero")
	}
	product := strings.TrimSpace(input.Product)
	if product == "" {
		return nil, apperror.Validation("product is required")
	}

	orderID, err := model.ParseID(input.OrderID)
	if err != nil {
		return nil, err
	}
	o, err := uc.orders.FindByID(ctx, orderID)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, apperror.Validation("orderId does not reference an existing order")
		}
		return nil, err
	}

	var ordered float64
	matched := false
	for _, it := range o.Items {
		if sameLine(it.Product, it.Color, product, input.Color) {
			ordered += it.Quantity
			matched = true
		}
	}
	if !matched {
		return nil, apperror.Validation(fmt.Sprintf("%s is not part of order #%d", product, o.OrderNumber))
	}

	returned, err := uc.returnedQuantity(ctx, o.ID, product, input.Color)
	if err != nil {
		return nil, err
	}
	if input.Quantity > ordered-returned {
		return nil, apperror.Validation(fmt.Sprintf("cannot return %g, only %g ordered and %g already returned",
			input.Quantity, ordered, returned))
	}

	seq, err := uc.seq.Next(ctx, returnSequence)
	if err != nil {
		return nil, err
	}

	customer := strings.TrimSpace(input.Customer)
	if customer == "" {
		customer = o.Customer
	}
	ret := &model.Return{
		ReturnID:    model.FormatReturnID(seq),
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		Customer:    customer,
		Product:     product,
		Color:       input.Color,
		Quantity:    input.Quantity,
		Reason:      input.Reason,
	}
	ret.DeriveStatus()
	ret.Touch(time.Now())

	if err := uc.repo.Create(ctx, ret); err != nil {
		return nil, err
	}

	uc.notify(ctx, model.CategoryNewReturn, fmt.Sprintf("New return %s for order #%d: %g %s %s. Reason: %s",
		ret.ReturnID, ret.OrderNumber, ret.Quantity, ret.Color, ret.Product, ret.Reason))
	return ret, nil
}

// returnedQuantity sums the pending and approved returns already filed
// against the same order line.
func (uc *returnUseCase) returnedQuantity(ctx context.Context, orderID primitive.ObjectID, product, color string) (float64, error) {
	existing, _, err := uc.repo.FindAll(ctx, &dto.ReturnFilters{OrderID: orderID.Hex()})
	if err != nil {
		return 0, err
	}
	var total float64
	for _, r := range existing {
		if r.Status == model.ReturnStatusRejected {
			continue
		}
		if sameLine(r.Product, r.Color, product, color) {
			total += r.Quantity
		}
	}
	return total, nil
}

// sameLine matches product names case-insensitively. An empty color on
// either side covers every color of the product.
func sameLine(product, color, wantProduct, wantColor string) bool {
	if !strings.EqualFold(product, wantProduct) {
		return false
	}
	return color == "" || wantColor == "" || strings.EqualFold(color, wantColor)
}

func (uc *returnUseCase) GetReturn(ctx context.Context, id string) (*model.Return, error) {
	oid, err := model.ParseID(id)
	if err != nil {
		return nil, err
	}
	return uc.repo.FindByID(ctx, oid)
}

func (uc *returnUseCase) ListReturns(ctx context.Context, filters *dto.ReturnFilters) ([]model.Return, int64, error) {
	switch filters.Status {
	case "", model.ReturnStatusPending, model.ReturnStatusApproved, model.ReturnStatusRejected:
	default:
		return nil, 0, apperror.Validation("invalid return status: " + filters.Status)
	}
	return uc.repo.FindAll(ctx, filters)
}

func (uc *returnUseCase) ApproveReturn(ctx context.Context, id string) (*model.Return, error) {
	return uc.process(ctx, id, true)
}

func (uc *returnUseCase) RejectReturn(ctx context.Context, id string) (*model.Return, error) {
	return uc.process(ctx, id, false)
}

func (uc *returnUseCase) process(ctx context.Context, id string, approve bool) (*model.Return, error) {
	oid, err := model.ParseID(id)
	if err != nil {
		return nil, err
	}
	ret, err := uc.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if ret.IsTerminal() {
		return nil, apperror.Conflict("return " + ret.ReturnID + " is already " + ret.DeriveStatus())
	}

	now := time.Now()
	ret.Approved = approve
	ret.Rejected = !approve
	ret.ProcessedAt = &now
	ret.UpdatedAt = now
	ret.DeriveStatus()

	if err := uc.repo.Update(ctx, ret); err != nil {
		return nil, err
	}

	uc.notify(ctx, model.CategoryReturnProcessed, fmt.Sprintf("Return %s (%s, order #%d) %s",
		ret.ReturnID, ret.Customer, ret.OrderNumber, ret.Status))
	return ret, nil
}

func (uc *returnUseCase) DeleteReturn(ctx context.Context, id string) error {
	oid, err := model.ParseID(id)
	if err != nil {
		return err
	}
	return uc.repo.Delete(ctx, oid)
}

func (uc *returnUseCase) notify(ctx context.Context, category, message string) {
	if err := uc.publisher.Publish(ctx, notification.NewEvent(category, message)); err != nil {
		uc.logger.Error("failed to publish return event", zap.String("category", category), zap.Error(err))
	}
}
