package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/textile-erp-service/internal/customer"
	custdto "github.com/fekuna/textile-erp-service/internal/customer/dto"
	"github.com/fekuna/textile-erp-service/internal/model"
	"github.com/fekuna/textile-erp-service/internal/notification"
	"github.com/fekuna/textile-erp-service/internal/order"
	"github.com/fekuna/textile-erp-service/internal/order/dto"
	"github.com/fekuna/textile-erp-service/internal/stock"
	"github.com/fekuna/textile-erp-service/pkg/apperror"
	"github.com/fekuna/textile-erp-service/pkg/database/mongodb"
	"github.com/fekuna/textile-erp-service/pkg/logger"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const orderSequence = "orders"

// Feed event names.
const (
	EventOrderCreated   = "order.created"
	EventOrderUpdated   = "order.updated"
	EventOrderConfirmed = "order.confirmed"
	EventOrderDeleted   = "order.deleted"
)

type orderUseCase struct {
	repo      order.Repository
	customers customer.Repository
	stocks    stock.Repository
	seq       mongodb.Sequencer
	publisher notification.Publisher
	feed      order.Broadcaster
	logger    logger.ZapLogger
}

func NewOrderUseCase(
	repo order.Repository,
	customers customer.Repository,
	stocks stock.Repository,
	seq mongodb.Sequencer,
	publisher notification.Publisher,
	feed order.Broadcaster,
	log logger.ZapLogger,
) order.UseCase {
	return &orderUseCase{
		repo:      repo,
		customers: customers,
		stocks:    stocks,
		seq:       seq,
		publisher: publisher,
		feed:      feed,
		logger:    log,
	}
}

func (uc *orderUseCase) CreateOrder(ctx context.Context, input *dto.OrderInput) (*model.Order, error) {
	status := input.Status
	if status == "" {
		status = model.OrderStatusPending
	}
	if status != model.OrderStatusPending && status != model.OrderStatusConfirmed {
		return nil, apperror.Validation("invalid order status: " + status)
	}

	items, err := buildItems(input.Items)
	if err != nil {
		return nil, err
	}

	o := &model.Order{
		Status: model.OrderStatusPending,
		Items:  items,
	}
	if input.Notes != nil {
		o.Notes = *input.Notes
	}
	if err := uc.resolveCustomer(ctx, o, input.CustomerID, input.Customer); err != nil {
		return nil, err
	}

	now := time.Now()
	o.Touch(now)
	o.OrderDate = now
	if input.OrderDate != nil {
		o.OrderDate = *input.OrderDate
	}
	o.DeliveryDate = input.DeliveryDate

	if status == model.OrderStatusConfirmed {
		if err := uc.deductStock(ctx, o); err != nil {
			return nil, err
		}
		o.Status = model.OrderStatusConfirmed
	}

	num, err := uc.seq.Next(ctx, orderSequence)
	if err != nil {
		return nil, err
	}
	o.OrderNumber = num

	if err := uc.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	uc.notify(ctx, model.CategoryNewOrder, fmt.Sprintf("New order #%d from %s: %d item(s), total %s",
		o.OrderNumber, o.Customer, len(o.Items), o.TotalAmount().StringFixed(2)))
	uc.feed.Broadcast(EventOrderCreated, o)
	if o.Status == model.OrderStatusConfirmed {
		uc.announceConfirmed(ctx, o)
	}
	return o, nil
}

func (uc *orderUseCase) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	oid, err := model.ParseID(id)
	if err != nil {
		return nil, err
	}
	o, err := uc.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	uc.attachCities(ctx, []*model.Order{o})
	return o, nil
}

func (uc *orderUseCase) ListOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int64, error) {
	if filters.Status != "" && filters.Status != model.OrderStatusPending && filters.Status != model.OrderStatusConfirmed {
		return nil, 0, apperror.Validation("invalid order status: " + filters.Status)
	}

	orders, total, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	ptrs := make([]*model.Order, len(orders))
	for i := range orders {
		ptrs[i] = &orders[i]
	}
	uc.attachCities(ctx, ptrs)
	return orders, total, nil
}

func (uc *orderUseCase) UpdateOrder(ctx context.Context, id string, input *dto.OrderInput) (*model.Order, error) {
	oid, err := model.ParseID(id)
	if err != nil {
		return nil, err
	}
	o, err := uc.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	if err := checkTransition(o.Status, input.Status); err != nil {
		return nil, err
	}

	if input.Items != nil {
		items, err := buildItems(input.Items)
		if err != nil {
			return nil, err
		}
		if o.StockDeducted && !sameItems(o.Items, items) {
			return nil, apperror.Conflict("items of a confirmed order cannot be changed")
		}
		o.Items = items
	}
	if input.CustomerID != "" || input.Customer != "" {
		if err := uc.resolveCustomer(ctx, o, input.CustomerID, input.Customer); err != nil {
			return nil, err
		}
	}
	if input.OrderDate != nil {
		o.OrderDate = *input.OrderDate
	}
	if input.DeliveryDate != nil {
		o.DeliveryDate = input.DeliveryDate
	}
	if input.Notes != nil {
		o.Notes = *input.Notes
	}

	confirming := input.Status == model.OrderStatusConfirmed && o.Status == model.OrderStatusPending
	if confirming {
		if err := uc.deductStock(ctx, o); err != nil {
			return nil, err
		}
		o.Status = model.OrderStatusConfirmed
	}

	o.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, o); err != nil {
		return nil, err
	}

	uc.feed.Broadcast(EventOrderUpdated, o)
	if confirming {
		uc.announceConfirmed(ctx, o)
	}
	return o, nil
}

func (uc *orderUseCase) UpdateStatus(ctx context.Context, id, status string) (*model.Order, error) {
	oid, err := model.ParseID(id)
	if err != nil {
		return nil, err
	}
	o, err := uc.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	if err := checkTransition(o.Status, status); err != nil {
		return nil, err
	}
	if o.Status == status {
		return o, nil
	}

	if err := uc.deductStock(ctx, o); err != nil {
		return nil, err
	}
	o.Status = model.OrderStatusConfirmed
	o.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, o); err != nil {
		return nil, err
	}

	uc.feed.Broadcast(EventOrderUpdated, o)
	uc.announceConfirmed(ctx, o)
	return o, nil
}

func (uc *orderUseCase) DeleteOrder(ctx context.Context, id string) error {
	oid, err := model.ParseID(id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, oid); err != nil {
		return err
	}
	uc.feed.Broadcast(EventOrderDeleted, map[string]string{"id": id})
	return nil
}

func (uc *orderUseCase) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	orders, _, err := uc.repo.FindAll(ctx, &dto.OrderFilters{})
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for i := range orders {
		total = total.Add(orders[i].TotalAmount())
	}
	return total, nil
}

// DeliveredCount counts confirmed orders whose delivery date has passed.
func (uc *orderUseCase) DeliveredCount(ctx context.Context) (int64, error) {
	orders, _, err := uc.repo.FindAll(ctx, &dto.OrderFilters{Status: model.OrderStatusConfirmed})
	if err != nil {
		return 0, err
	}
	now := time.Now()
	var n int64
	for i := range orders {
		if orders[i].IsDelivered(now) {
			n++
		}
	}
	return n, nil
}

func (uc *orderUseCase) MonthlySales(ctx context.Context, year int) ([]dto.MonthlySales, error) {
	if year <= 0 {
		year = time.Now().Year()
	}
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0).Add(-time.Nanosecond)

	orders, _, err := uc.repo.FindAll(ctx, &dto.OrderFilters{From: &from, To: &to})
	if err != nil {
		return nil, err
	}

	revenue := make([]decimal.Decimal, 12)
	out := make([]dto.MonthlySales, 12)
	for m := 0; m < 12; m++ {
		out[m].Month = m + 1
		out[m].Name = time.Month(m + 1).String()[:3]
		revenue[m] = decimal.Zero
	}
	for i := range orders {
		m := int(orders[i].OrderDate.UTC().Month()) - 1
		out[m].Orders++
		revenue[m] = revenue[m].Add(orders[i].TotalAmount())
	}
	for m := range out {
		out[m].Revenue = revenue[m].Round(2).InexactFloat64()
	}
	return out, nil
}

// deductStock takes every stock-linked item out of its stock document. All
// quantities are checked before anything is written.
func (uc *orderUseCase) deductStock(ctx context.Context, o *model.Order) error {
	if o.StockDeducted {
		return nil
	}

	stocks := map[primitive.ObjectID]*model.Stock{}
	var touched []primitive.ObjectID
	for _, it := range o.Items {
		if it.StockID == nil {
			continue
		}
		s, ok := stocks[*it.StockID]
		if !ok {
			var err error
			s, err = uc.stocks.FindByID(ctx, *it.StockID)
			if err != nil {
				if apperror.Is(err, apperror.KindNotFound) {
					return apperror.Validation(fmt.Sprintf("stock %s for %s not found", it.StockID.Hex(), it.Product))
				}
				return err
			}
			stocks[*it.StockID] = s
			touched = append(touched, *it.StockID)
		}

		v := s.Variant(it.Color)
		if v == nil {
			return apperror.Validation(fmt.Sprintf("color %q not found on stock for %s", it.Color, it.Product))
		}
		if v.Quantity < it.Quantity {
			return apperror.Validation(fmt.Sprintf("insufficient stock for %s %s: available %g, requested %g",
				it.Product, it.Color, v.Quantity, it.Quantity))
		}
		v.Quantity -= it.Quantity
	}

	now := time.Now()
	for _, id := range touched {
		s := stocks[id]
		prevStatus := s.Status
		s.RecomputeStatus()
		s.UpdatedAt = now
		if err := uc.stocks.Update(ctx, s); err != nil {
			return err
		}
		if stock.EnteredLowStock(prevStatus, s.Status) {
			uc.notify(ctx, model.CategoryLowStock, fmt.Sprintf("Low stock: %s (%s) is %s, %g remaining",
				s.ProductName, s.Type, s.Status, s.TotalQuantity()))
		}
	}
	o.StockDeducted = true
	return nil
}

// resolveCustomer fills the typed customer reference. An unknown name is
// kept as a walk-in customer without a reference.
func (uc *orderUseCase) resolveCustomer(ctx context.Context, o *model.Order, customerID, name string) error {
	name = strings.TrimSpace(name)
	if customerID != "" {
		oid, err := model.ParseID(customerID)
		if err != nil {
			return err
		}
		c, err := uc.customers.FindByID(ctx, oid)
		if err != nil {
			if apperror.Is(err, apperror.KindNotFound) {
				return apperror.Validation("customer not found")
			}
			return err
		}
		o.CustomerID = &c.ID
		o.Customer = c.Name
		return nil
	}

	if name == "" {
		return apperror.Validation("customer is required")
	}
	o.Customer = name
	o.CustomerID = nil

	c, err := uc.customers.FindByName(ctx, name)
	switch {
	case err == nil:
		o.CustomerID = &c.ID
		o.Customer = c.Name
	case apperror.Is(err, apperror.KindNotFound):
	default:
		return err
	}
	return nil
}

// attachCities joins customer cities with a single secondary lookup.
func (uc *orderUseCase) attachCities(ctx context.Context, orders []*model.Order) {
	if len(orders) == 0 {
		return
	}

	var ids []primitive.ObjectID
	var names []string
	for _, o := range orders {
		if o.CustomerID != nil {
			ids = append(ids, *o.CustomerID)
		} else if o.Customer != "" {
			names = append(names, o.Customer)
		}
	}

	if len(ids) == 0 && len(names) == 0 {
		return
	}

	customers, _, err := uc.customers.FindAll(ctx, &custdto.CustomerFilters{IDs: ids, Names: names})
	if err != nil {
		uc.logger.Warn("failed to join customer cities", zap.Error(err))
		return
	}

	byID := make(map[primitive.ObjectID]string, len(customers))
	byName := make(map[string]string, len(customers))
	for _, c := range customers {
		byID[c.ID] = c.City
		byName[strings.ToLower(c.Name)] = c.City
	}
	for _, o := range orders {
		if o.CustomerID != nil {
			o.CustomerCity = byID[*o.CustomerID]
		}
		if o.CustomerCity == "" {
			o.CustomerCity = byName[strings.ToLower(o.Customer)]
		}
	}
}

func (uc *orderUseCase) announceConfirmed(ctx context.Context, o *model.Order) {
	uc.notify(ctx, model.CategoryOrderConfirmed, fmt.Sprintf("Order #%d for %s confirmed, total %s",
		o.OrderNumber, o.Customer, o.TotalAmount().StringFixed(2)))
	uc.feed.Broadcast(EventOrderConfirmed, o)
}

func (uc *orderUseCase) notify(ctx context.Context, category, message string) {
	if err := uc.publisher.Publish(ctx, notification.NewEvent(category, message)); err != nil {
		uc.logger.Error("failed to publish order event", zap.String("category", category), zap.Error(err))
	}
}

// checkTransition allows pending -> confirmed and same-state updates only.
func checkTransition(current, next string) error {
	switch {
	case next == "" || next == current:
		return nil
	case next != model.OrderStatusPending && next != model.OrderStatusConfirmed:
		return apperror.Validation("invalid order status: " + next)
	case current == model.OrderStatusConfirmed:
		return apperror.Conflict("a confirmed order cannot go back to " + next)
	}
	return nil
}

func buildItems(in []dto.OrderItemInput) ([]model.OrderItem, error) {
	if len(in) == 0 {
		return nil, apperror.Validation("order must have at least one item")
	}

	items := make([]model.OrderItem, 0, len(in))
	for i, it := range in {
		if strings.TrimSpace(it.Product) == "" {
			return nil, apperror.Validation(fmt.Sprintf("item %d: product is required", i+1))
		}
		if it.Quantity <= 0 {
			return nil, apperror.Validation(fmt.Sprintf("item %d: quantity must be greater than zero", i+1))
		}
		if it.Price < 0 {
			return nil, apperror.Validation(fmt.Sprintf("item %d: price must not be negative", i+1))
		}

		item := model.OrderItem{
			Product:  strings.TrimSpace(it.Product),
			Color:    it.Color,
			Quantity: it.Quantity,
			Unit:     it.Unit,
			Price:    it.Price,
		}
		if it.ProductID != "" {
			oid, err := primitive.ObjectIDFromHex(it.ProductID)
			if err != nil {
				return nil, apperror.Validation(fmt.Sprintf("item %d: invalid productId", i+1))
			}
			item.ProductID = &oid
		}
		if it.StockID != "" {
			oid, err := primitive.ObjectIDFromHex(it.StockID)
			if err != nil {
				return nil, apperror.Validation(fmt.Sprintf("item %d: invalid stockId", i+1))
			}
			item.StockID = &oid
		}
		items = append(items, item)
	}
	return items, nil
}

func sameItems(a, b []model.OrderItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Product != b[i].Product || !strings.EqualFold(a[i].Color, b[i].Color) ||
			a[i].Quantity != b[i].Quantity || a[i].Price != b[i].Price ||
			!sameRef(a[i].StockID, b[i].StockID) {
			return false
		}
	}
	return true
}

func sameRef(a, b *primitive.ObjectID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
