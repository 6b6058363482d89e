package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fekuna/textile-erp-service/internal/customer"
	"github.com/fekuna/textile-erp-service/internal/customer/dto"
	"github.com/fekuna/textile-erp-service/internal/model"
	"github.com/fekuna/textile-erp-service/internal/notification"
	"github.com/fekuna/textile-erp-service/internal/order"
	orderdto "github.com/fekuna/textile-erp-service/internal/order/dto"
	"github.com/fekuna/textile-erp-service/pkg/apperror"
	"github.com/fekuna/textile-erp-service/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const defaultTopCustomers = 5

type customerUseCase struct {
	repo      customer.Repository
	orders    order.Repository
	publisher notification.Publisher
	logger    logger.ZapLogger
}

func NewCustomerUseCase(repo customer.Repository, orders order.Repository, publisher notification.Publisher, log logger.ZapLogger) customer.UseCase {
	return &customerUseCase{
		repo:      repo,
		orders:    orders,
		publisher: publisher,
		logger:    log,
	}
}

func (uc *customerUseCase) CreateCustomer(ctx context.Context, input *dto.CustomerInput) (*model.Customer, error) {
	c := &model.Customer{}
	if err := applyInput(c, input); err != nil {
		return nil, err
	}
	c.Touch(time.Now())

	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("New %s customer: %s (%s)", c.Type, c.Name, c.City)
	if err := uc.publisher.Publish(ctx, notification.NewEvent(model.CategoryNewCustomer, msg)); err != nil {
		uc.logger.Error("failed to publish customer event", zap.Error(err))
	}
	return c, nil
}

func (uc *customerUseCase) GetCustomer(ctx context.Context, id string) (*model.Customer, error) {
	oid, err := model.ParseID(id)
	if err != nil {
		return nil, err
	}
	return uc.repo.FindByID(ctx, oid)
}

func (uc *customerUseCase) ListCustomers(ctx context.Context, filters *dto.CustomerFilters) ([]model.Customer, int64, error) {
	if filters.City != "" && !model.IsValidCity(filters.City) {
		return nil, 0, apperror.Validation("invalid city: " + filters.City)
	}
	if filters.Type != "" && !model.IsValidCustomerType(filters.Type) {
		return nil, 0, apperror.Validation("invalid customer type: " + filters.Type)
	}
	return uc.repo.FindAll(ctx, filters)
}

func (uc *customerUseCase) UpdateCustomer(ctx context.Context, id string, input *dto.CustomerInput) (*model.Customer, error) {
	oid, err := model.ParseID(id)
	if err != nil {
		return nil, err
	}
	c, err := uc.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if err := applyInput(c, input); err != nil {
		return nil, err
	}
	c.Touch(time.Now())

	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *customerUseCase) DeleteCustomer(ctx context.Context, id string) error {
	oid, err := model.ParseID(id)
	if err != nil {
		return err
	}
	return uc.repo.Delete(ctx, oid)
}

// TopCustomers ranks customers by order revenue.
func (uc *customerUseCase) TopCustomers(ctx context.Context, limit int) ([]dto.TopCustomer, error) {
	if limit <= 0 {
		limit = defaultTopCustomers
	}

	orders, _, err := uc.orders.FindAll(ctx, &orderdto.OrderFilters{})
	if err != nil {
		return nil, err
	}

	type acc struct {
		top     dto.TopCustomer
		revenue decimal.Decimal
	}
	groups := map[string]*acc{}
	for i := range orders {
		o := &orders[i]
		key := strings.ToLower(o.Customer)
		if o.CustomerID != nil {
			key = o.CustomerID.Hex()
		}
		g, ok := groups[key]
		if !ok {
			g = &acc{top: dto.TopCustomer{Customer: o.Customer}, revenue: decimal.Zero}
			if o.CustomerID != nil {
				g.top.CustomerID = o.CustomerID.Hex()
			}
			groups[key] = g
		}
		g.top.Orders++
		g.revenue = g.revenue.Add(o.TotalAmount())
	}

	ranked := make([]*acc, 0, len(groups))
	for _, g := range groups {
		ranked = append(ranked, g)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if c := ranked[i].revenue.Cmp(ranked[j].revenue); c != 0 {
			return c > 0
		}
		if ranked[i].top.Orders != ranked[j].top.Orders {
			return ranked[i].top.Orders > ranked[j].top.Orders
		}
		return ranked[i].top.Customer < ranked[j].top.Customer
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]dto.TopCustomer, len(ranked))
	names := make([]string, 0, len(ranked))
	for i, g := range ranked {
		g.top.Revenue = g.revenue.Round(2).InexactFloat64()
		out[i] = g.top
		names = append(names, g.top.Customer)
	}

	if len(names) > 0 {
		customers, _, err := uc.repo.FindAll(ctx, &dto.CustomerFilters{Names: names})
		if err != nil {
			uc.logger.Warn("failed to join top customer cities", zap.Error(err))
			return out, nil
		}
		cities := make(map[string]string, len(customers))
		for _, c := range customers {
			cities[strings.ToLower(c.Name)] = c.City
		}
		for i := range out {
			out[i].City = cities[strings.ToLower(out[i].Customer)]
		}
	}
	return out, nil
}

func (uc *customerUseCase) Cities() []string {
	return append([]string(nil), model.Cities...)
}

func applyInput(c *model.Customer, in *dto.CustomerInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return apperror.Validation("name is required")
	}
	if !model.IsValidCity(in.City) {
		return apperror.Validation(fmt.Sprintf("invalid city %q, must be one of: %s", in.City, strings.Join(model.Cities, ", ")))
	}
	customerType := in.Type
	if customerType == "" {
		customerType = model.CustomerTypeRetail
	}
	if !model.IsValidCustomerType(customerType) {
		return apperror.Validation("type must be wholesale or retail")
	}
	if in.CreditLimit < 0 {
		return apperror.Validation("creditLimit must not be negative")
	}

	c.Name = name
	c.Type = customerType
	c.Phone = strings.TrimSpace(in.Phone)
	c.Email = strings.TrimSpace(in.Email)
	c.Address = in.Address
	c.City = in.City
	c.CreditLimit = in.CreditLimit
	c.Notes = in.Notes
	return nil
}
