package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"

	adjdto "github.com/fekuna/textile-erp-service/internal/adjustment/dto"
	admindto "github.com/fekuna/textile-erp-service/internal/admin/dto"
	agentdto "github.com/fekuna/textile-erp-service/internal/agent/dto"
	customerdto "github.com/fekuna/textile-erp-service/internal/customer/dto"
	"github.com/fekuna/textile-erp-service/internal/model"
	notifdto "github.com/fekuna/textile-erp-service/internal/notification/dto"
	orderdto "github.com/fekuna/textile-erp-service/internal/order/dto"
	productdto "github.com/fekuna/textile-erp-service/internal/product/dto"
	returndto "github.com/fekuna/textile-erp-service/internal/returns/dto"
	stockdto "github.com/fekuna/textile-erp-service/internal/stock/dto"
	"github.com/fekuna/textile-erp-service/pkg/apperror"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Products

type ProductRepo struct{ s *store[model.Product] }

func NewProductRepo() *ProductRepo {
	return &ProductRepo{s: newStore("product", func(p *model.Product) primitive.ObjectID { return p.ID })}
}

func (r *ProductRepo) Create(_ context.Context, p *model.Product) error { return r.s.create(p) }
func (r *ProductRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.Product, error) {
	return r.s.find(id)
}
func (r *ProductRepo) Update(_ context.Context, p *model.Product) error      { return r.s.update(p) }
func (r *ProductRepo) Delete(_ context.Context, id primitive.ObjectID) error { return r.s.delete(id) }
func (r *ProductRepo) Len() int                                              { return r.s.len() }

func (r *ProductRepo) FindAll(_ context.Context, f *productdto.ProductFilters) ([]model.Product, int64, error) {
	ids := map[primitive.ObjectID]bool{}
	for _, id := range f.IDs {
		ids[id] = true
	}
	items := r.s.filter(func(p *model.Product) bool {
		if len(ids) > 0 && !ids[p.ID] {
			return false
		}
		if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
			return false
		}
		if f.SearchQuery != "" && !contains(p.Name, f.SearchQuery) && !contains(p.SKU, f.SearchQuery) &&
			!contains(p.Category, f.SearchQuery) && !contains(strings.Join(p.Tags, " "), f.SearchQuery) {
			return false
		}
		return true
	})
	if f.SortBy == "name" {
		sort.SliceStable(items, func(i, j int) bool {
			if f.SortOrder == "asc" {
				return items[i].Name < items[j].Name
			}
			return items[i].Name > items[j].Name
		})
	}
	page, total := paginate(items, f.Page, f.PageSize)
	return page, total, nil
}

// Stocks

type StockRepo struct{ s *store[model.Stock] }

func NewStockRepo() *StockRepo {
	return &StockRepo{s: newStore("stock", func(s *model.Stock) primitive.ObjectID { return s.ID })}
}

func (r *StockRepo) Create(_ context.Context, s *model.Stock) error { return r.s.create(s) }
func (r *StockRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.Stock, error) {
	return r.s.find(id)
}
func (r *StockRepo) Update(_ context.Context, s *model.Stock) error        { return r.s.update(s) }
func (r *StockRepo) Delete(_ context.Context, id primitive.ObjectID) error { return r.s.delete(id) }
func (r *StockRepo) Len() int                                              { return r.s.len() }

func (r *StockRepo) FindAll(_ context.Context, f *stockdto.StockFilters) ([]model.Stock, int64, error) {
	items := r.s.filter(func(s *model.Stock) bool {
		if f.Type != "" && s.Type != f.Type {
			return false
		}
		if f.Status != "" && s.Status != f.Status {
			return false
		}
		if len(f.Statuses) > 0 && !inList(f.Statuses, s.Status) {
			return false
		}
		if f.ProductID != "" || f.ProductName != "" {
			byID := f.ProductID != "" && s.ProductID != nil && s.ProductID.Hex() == f.ProductID
			byName := f.ProductName != "" && strings.EqualFold(s.ProductName, f.ProductName)
			if !byID && !byName {
				return false
			}
		}
		if f.Search != "" && !contains(s.ProductName, f.Search) && !contains(s.BatchNumber, f.Search) &&
			!contains(s.Location, f.Search) {
			return false
		}
		return true
	})
	page, total := paginate(items, f.Page, f.PageSize)
	return page, total, nil
}

// Orders

type OrderRepo struct {
	s       *store[model.Order]
	Renames []string
}

func NewOrderRepo() *OrderRepo {
	return &OrderRepo{s: newStore("order", func(o *model.Order) primitive.ObjectID { return o.ID })}
}

func (r *OrderRepo) Create(_ context.Context, o *model.Order) error { return r.s.create(o) }
func (r *OrderRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.Order, error) {
	return r.s.find(id)
}
func (r *OrderRepo) Update(_ context.Context, o *model.Order) error        { return r.s.update(o) }
func (r *OrderRepo) Delete(_ context.Context, id primitive.ObjectID) error { return r.s.delete(id) }

func (r *OrderRepo) FindAll(_ context.Context, f *orderdto.OrderFilters) ([]model.Order, int64, error) {
	items := r.s.filter(func(o *model.Order) bool {
		if f.Status != "" && o.Status != f.Status {
			return false
		}
		if f.CustomerID != nil && (o.CustomerID == nil || *o.CustomerID != *f.CustomerID) {
			return false
		}
		if f.Customer != "" && !strings.EqualFold(o.Customer, f.Customer) {
			return false
		}
		if f.From != nil && o.OrderDate.Before(*f.From) {
			return false
		}
		if f.To != nil && o.OrderDate.After(*f.To) {
			return false
		}
		if f.ProductID != nil || f.ProductName != "" {
			found := false
			for _, it := range o.Items {
				if (f.ProductID != nil && it.ProductID != nil && *it.ProductID == *f.ProductID) ||
					(f.ProductName != "" && strings.EqualFold(it.Product, f.ProductName)) {
					found = true
				}
			}
			if !found {
				return false
			}
		}
		if f.Search != "" && !contains(o.Customer, f.Search) && !contains(o.Notes, f.Search) {
			return false
		}
		return true
	})
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].OrderDate.Equal(items[j].OrderDate) {
			return items[i].OrderDate.After(items[j].OrderDate)
		}
		return items[i].OrderNumber > items[j].OrderNumber
	})
	page, total := paginate(items, f.Page, f.PageSize)
	return page, total, nil
}

func (r *OrderRepo) RenameProductItems(_ context.Context, productID primitive.ObjectID, oldName, newName string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.Renames = append(r.Renames, oldName+"->"+newName)

	var modified int64
	for _, o := range r.s.docs {
		changed := false
		for i := range o.Items {
			it := &o.Items[i]
			linked := it.ProductID != nil && *it.ProductID == productID
			if strings.EqualFold(it.Product, oldName) || (linked && it.Product != newName) {
				id := productID
				it.Product = newName
				it.ProductID = &id
				changed = true
			}
		}
		if changed {
			modified++
		}
	}
	return modified, nil
}

// Customers

type CustomerRepo struct{ s *store[model.Customer] }

func NewCustomerRepo() *CustomerRepo {
	return &CustomerRepo{s: newStore("customer", func(c *model.Customer) primitive.ObjectID { return c.ID })}
}

func (r *CustomerRepo) Create(_ context.Context, c *model.Customer) error { return r.s.create(c) }
func (r *CustomerRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.Customer, error) {
	return r.s.find(id)
}
func (r *CustomerRepo) Update(_ context.Context, c *model.Customer) error     { return r.s.update(c) }
func (r *CustomerRepo) Delete(_ context.Context, id primitive.ObjectID) error { return r.s.delete(id) }

func (r *CustomerRepo) FindByName(_ context.Context, name string) (*model.Customer, error) {
	items := r.s.filter(func(c *model.Customer) bool { return strings.EqualFold(c.Name, name) })
	if len(items) == 0 {
		return nil, apperror.NotFound("customer not found")
	}
	return &items[0], nil
}

func (r *CustomerRepo) FindAll(_ context.Context, f *customerdto.CustomerFilters) ([]model.Customer, int64, error) {
	ids := map[primitive.ObjectID]bool{}
	for _, id := range f.IDs {
		ids[id] = true
	}
	items := r.s.filter(func(c *model.Customer) bool {
		if f.Type != "" && c.Type != f.Type {
			return false
		}
		if f.City != "" && c.City != f.City {
			return false
		}
		if len(f.IDs) > 0 || len(f.Names) > 0 {
			if !ids[c.ID] && !inList(f.Names, c.Name) {
				return false
			}
		}
		if f.CreatedFrom != nil && c.CreatedAt.Before(*f.CreatedFrom) {
			return false
		}
		if f.CreatedTo != nil && !c.CreatedAt.Before(*f.CreatedTo) {
			return false
		}
		if f.Search != "" && !contains(c.Name, f.Search) && !contains(c.Phone, f.Search) &&
			!contains(c.Email, f.Search) && !contains(c.City, f.Search) {
			return false
		}
		return true
	})
	page, total := paginate(items, f.Page, f.PageSize)
	return page, total, nil
}

// Returns

type ReturnRepo struct{ s *store[model.Return] }

func NewReturnRepo() *ReturnRepo {
	return &ReturnRepo{s: newStore("return", func(r *model.Return) primitive.ObjectID { return r.ID })}
}

func (r *ReturnRepo) Create(_ context.Context, ret *model.Return) error { return r.s.create(ret) }
func (r *ReturnRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.Return, error) {
	return r.s.find(id)
}
func (r *ReturnRepo) Update(_ context.Context, ret *model.Return) error     { return r.s.update(ret) }
func (r *ReturnRepo) Delete(_ context.Context, id primitive.ObjectID) error { return r.s.delete(id) }

func (r *ReturnRepo) FindAll(_ context.Context, f *returndto.ReturnFilters) ([]model.Return, int64, error) {
	items := r.s.filter(func(ret *model.Return) bool {
		if f.Status != "" && ret.Status != f.Status {
			return false
		}
		if f.OrderID != "" && ret.OrderID.Hex() != f.OrderID {
			return false
		}
		if f.Search != "" && !contains(ret.ReturnID, f.Search) && !contains(ret.Customer, f.Search) &&
			!contains(ret.Product, f.Search) {
			return false
		}
		return true
	})
	page, total := paginate(items, f.Page, f.PageSize)
	return page, total, nil
}

// Admins

type AdminRepo struct{ s *store[model.Admin] }

func NewAdminRepo() *AdminRepo {
	return &AdminRepo{s: newStore("admin", func(a *model.Admin) primitive.ObjectID { return a.ID })}
}

func (r *AdminRepo) Create(_ context.Context, a *model.Admin) error { return r.s.create(a) }
func (r *AdminRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.Admin, error) {
	return r.s.find(id)
}
func (r *AdminRepo) Update(_ context.Context, a *model.Admin) error        { return r.s.update(a) }
func (r *AdminRepo) Delete(_ context.Context, id primitive.ObjectID) error { return r.s.delete(id) }

func (r *AdminRepo) FindAll(_ context.Context, f *admindto.AdminFilters) ([]model.Admin, int64, error) {
	items := r.s.filter(func(a *model.Admin) bool {
		if f.Role != "" && a.Role != f.Role {
			return false
		}
		if f.Active != nil && a.Active != *f.Active {
			return false
		}
		if f.Search != "" && !contains(a.Name, f.Search) && !contains(a.Phone, f.Search) {
			return false
		}
		return true
	})
	page, total := paginate(items, f.Page, f.PageSize)
	return page, total, nil
}

// Agents

type AgentRepo struct{ s *store[model.Agent] }

func NewAgentRepo() *AgentRepo {
	return &AgentRepo{s: newStore("agent", func(a *model.Agent) primitive.ObjectID { return a.ID })}
}

func (r *AgentRepo) Create(_ context.Context, a *model.Agent) error { return r.s.create(a) }
func (r *AgentRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.Agent, error) {
	return r.s.find(id)
}
func (r *AgentRepo) Update(_ context.Context, a *model.Agent) error        { return r.s.update(a) }
func (r *AgentRepo) Delete(_ context.Context, id primitive.ObjectID) error { return r.s.delete(id) }

func (r *AgentRepo) FindAll(_ context.Context, f *agentdto.AgentFilters) ([]model.Agent, int64, error) {
	items := r.s.filter(func(a *model.Agent) bool {
		if f.City != "" && a.City != f.City {
			return false
		}
		if f.Active != nil && a.Active != *f.Active {
			return false
		}
		if f.Search != "" && !contains(a.Name, f.Search) && !contains(a.Phone, f.Search) && !contains(a.Email, f.Search) {
			return false
		}
		return true
	})
	page, total := paginate(items, f.Page, f.PageSize)
	return page, total, nil
}

// Adjustment ledger

type AdjustmentRepo struct {
	mu      sync.Mutex
	Entries []model.Adjustment
	Buckets []model.MovementBucket
	// Reports records every MovementReport call.
	Reports []adjdto.ReportFilters
	// CreateErr, when set, fails every insert.
	CreateErr error
}

func NewAdjustmentRepo() *AdjustmentRepo { return &AdjustmentRepo{} }

func (r *AdjustmentRepo) EnsureSchema(context.Context) error { return nil }

func (r *AdjustmentRepo) Create(_ context.Context, a *model.Adjustment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.Entries = append(r.Entries, *a)
	return nil
}

func (r *AdjustmentRepo) FindAll(_ context.Context, f *adjdto.AdjustmentFilters) ([]model.Adjustment, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Adjustment{}
	for i := len(r.Entries) - 1; i >= 0; i-- {
		a := r.Entries[i]
		if f.StockID != "" && a.StockID != f.StockID {
			continue
		}
		if f.Product != "" && !contains(a.Product, f.Product) {
			continue
		}
		if f.Color != "" && !strings.EqualFold(a.Color, f.Color) {
			continue
		}
		out = append(out, a)
	}
	page, total := paginate(out, f.Page, f.PageSize)
	return page, total, nil
}

func (r *AdjustmentRepo) MovementReport(_ context.Context, f *adjdto.ReportFilters) ([]model.MovementBucket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Reports = append(r.Reports, *f)
	return r.Buckets, nil
}

// Notification messages and settings

type MessageRepo struct{ s *store[model.WhatsAppMessage] }

func NewMessageRepo() *MessageRepo {
	return &MessageRepo{s: newStore("message", func(m *model.WhatsAppMessage) primitive.ObjectID { return m.ID })}
}

func (r *MessageRepo) Create(_ context.Context, m *model.WhatsAppMessage) error { return r.s.create(m) }
func (r *MessageRepo) Delete(_ context.Context, id primitive.ObjectID) error    { return r.s.delete(id) }

func (r *MessageRepo) FindAll(_ context.Context, f *notifdto.MessageFilters) ([]model.WhatsAppMessage, int64, error) {
	items := r.s.filter(func(m *model.WhatsAppMessage) bool {
		return (f.Category == "" || m.Category == f.Category) && (f.Status == "" || m.Status == f.Status)
	})
	page, total := paginate(items, f.Page, f.PageSize)
	return page, total, nil
}

type SettingsRepo struct {
	mu       sync.Mutex
	settings *model.NotificationSettings
}

func NewSettingsRepo() *SettingsRepo { return &SettingsRepo{} }

func (r *SettingsRepo) Get(context.Context) (*model.NotificationSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.settings == nil {
		return model.DefaultNotificationSettings(), nil
	}
	s := *r.settings
	return &s, nil
}

func (r *SettingsRepo) Save(_ context.Context, s *model.NotificationSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.settings = &cp
	return nil
}

func inList(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}
