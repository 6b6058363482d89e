package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fekuna/textile-erp-service/internal/model"
	"github.com/fekuna/textile-erp-service/internal/order"
	orderdto "github.com/fekuna/textile-erp-service/internal/order/dto"
	"github.com/fekuna/textile-erp-service/internal/product"
	"github.com/fekuna/textile-erp-service/internal/product/dto"
	"github.com/fekuna/textile-erp-service/internal/stock"
	stockdto "github.com/fekuna/textile-erp-service/internal/stock/dto"
	"github.com/fekuna/textile-erp-service/pkg/apperror"
	"github.com/fekuna/textile-erp-service/pkg/cache"
	"github.com/fekuna/textile-erp-service/pkg/logger"
	"github.com/fekuna/textile-erp-service/pkg/search"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	indexName        = "products"
	listCacheTTL     = 5 * time.Minute
	listCachePattern = "products:list:*"
	defaultTop       = 5
	defaultRecent    = 10
)

const indexMapping = `{
	"mappings": {
		"properties": {
			"name": { "type": "text" },
			"sku": { "type": "keyword" },
			"category": { "type": "text", "fields": { "raw": { "type": "keyword" } } },
			"tags": { "type": "text" },
			"description": { "type": "text" },
			"colors": { "type": "text" },
			"createdAt": { "type": "date" }
		}
	}
}`

type productUseCase struct {
	repo   product.Repository
	orders order.Repository
	stocks stock.Repository
	cache  *cache.RedisClient
	es     *search.Client
	logger logger.ZapLogger
}

func NewProductUseCase(
	repo product.Repository,
	orders order.Repository,
	stocks stock.Repository,
	cache *cache.RedisClient,
	es *search.Client,
	log logger.ZapLogger,
) product.UseCase {
	return &productUseCase{
		repo:   repo,
		orders: orders,
		stocks: stocks,
		cache:  cache,
		es:     es,
		logger: log,
	}
}

// EnsureIndex creates the search index when search is enabled.
func EnsureIndex(ctx context.Context, es *search.Client) error {
	if es == nil {
		return nil
	}
	return es.CreateIndex(ctx, indexName, indexMapping)
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.ProductInput) (*model.Product, error) {
	p := &model.Product{}
	if err := applyInput(p, input); err != nil {
		return nil, err
	}

	// The id is assigned before insert so the SKU can be derived from it.
	p.ID = primitive.NewObjectID()
	p.SKU = model.SKUFromID(p.ID)
	p.Touch(time.Now())

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	go uc.invalidateProductCache(context.Background())
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	oid, err := model.ParseID(id)
	if err != nil {
		return nil, err
	}
	return uc.repo.FindByID(ctx, oid)
}

type cachedList struct {
	Products []model.Product
	Count    int64
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int64, error) {
	cacheKey, err := uc.generateCacheKey(filters)
	if err == nil {
		var cached cachedList
		hit, err := uc.cache.GetJSON(ctx, cacheKey, &cached)
		if err != nil {
			uc.logger.Warn("product list cache read failed", zap.Error(err))
		}
		if hit {
			return cached.Products, cached.Count, nil
		}
	}

	if filters.SearchQuery != "" && uc.es != nil {
		products, count, err := uc.searchElastic(ctx, filters)
		if err == nil {
			return products, count, nil
		}
		uc.logger.Error("ES search failed, falling back to DB", zap.Error(err))
	}

	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	if cacheKey != "" {
		if err := uc.cache.SetJSON(ctx, cacheKey, cachedList{Products: products, Count: count}, listCacheTTL); err != nil {
			uc.logger.Warn("product list cache write failed", zap.Error(err))
		}
	}
	return products, count, nil
}

// searchElastic resolves the page of matching ids in Elasticsearch and loads
// the documents from Mongo, keeping the search ranking.
func (uc *productUseCase) searchElastic(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int64, error) {
	must := []map[string]any{
		{
			"query_string": map[string]any{
				"query":  fmt.Sprintf("*%s*", escapeQuery(filters.SearchQuery)),
				"fields": []string{"name^3", "sku^2", "category", "tags", "colors", "description"},
			},
		},
	}
	if filters.Category != "" {
		must = append(must, map[string]any{
			"term": map[string]any{"category.raw": filters.Category},
		})
	}

	q := map[string]any{
		"query":   map[string]any{"bool": map[string]any{"must": must}},
		"_source": false,
	}
	if filters.PageSize > 0 {
		q["from"] = (filters.Page - 1) * filters.PageSize
		q["size"] = filters.PageSize
	}

	res, err := uc.es.Search(ctx, indexName, q)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]primitive.ObjectID, 0, len(res.Hits.Hits))
	rank := make(map[primitive.ObjectID]int, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		oid, err := primitive.ObjectIDFromHex(hit.ID)
		if err != nil {
			continue
		}
		rank[oid] = len(ids)
		ids = append(ids, oid)
	}
	if len(ids) == 0 {
		return []model.Product{}, int64(res.Hits.Total.Value), nil
	}

	products, _, err := uc.repo.FindAll(ctx, &dto.ProductFilters{IDs: ids})
	if err != nil {
		return nil, 0, err
	}
	sort.SliceStable(products, func(i, j int) bool {
		return rank[products[i].ID] < rank[products[j].ID]
	})
	return products, int64(res.Hits.Total.Value), nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, id string, input *dto.ProductInput) (*model.Product, error) {
	oid, err := model.ParseID(id)
	if err != nil {
		return nil, err
	}
	p, err := uc.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	oldName := p.Name
	if err := applyInput(p, input); err != nil {
		return nil, err
	}
	if p.SKU == "" {
		p.SKU = model.SKUFromID(p.ID)
	}
	p.Touch(time.Now())

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	if oldName != p.Name {
		n, err := uc.orders.RenameProductItems(ctx, p.ID, oldName, p.Name)
		if err != nil {
			uc.logger.Error("failed to repair order items after rename",
				zap.String("product_id", id), zap.String("old_name", oldName), zap.Error(err))
		} else {
			uc.logger.Info("repaired order items after rename",
				zap.String("product_id", id), zap.String("old_name", oldName), zap.Int64("modified", n))
		}
	}

	go uc.invalidateProductCache(context.Background())
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	oid, err := model.ParseID(id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, oid); err != nil {
		return err
	}

	go uc.invalidateProductCache(context.Background())
	if uc.es != nil {
		go func() {
			if err := uc.es.Delete(context.Background(), indexName, id); err != nil {
				uc.logger.Error("failed to delete product from ES", zap.Error(err))
			}
		}()
	}
	return nil
}

func (uc *productUseCase) ListNames(ctx context.Context) ([]dto.ProductName, error) {
	products, _, err := uc.repo.FindAll(ctx, &dto.ProductFilters{SortBy: "name", SortOrder: "asc"})
	if err != nil {
		return nil, err
	}
	names := make([]dto.ProductName, len(products))
	for i, p := range products {
		names[i] = dto.ProductName{ID: p.ID.Hex(), Name: p.Name, SKU: p.SKU}
	}
	return names, nil
}

// TopProducts ranks products by the number of orders that contain them.
func (uc *productUseCase) TopProducts(ctx context.Context, limit int) ([]dto.TopProduct, error) {
	if limit <= 0 {
		limit = defaultTop
	}

	orders, _, err := uc.orders.FindAll(ctx, &orderdto.OrderFilters{})
	if err != nil {
		return nil, err
	}

	type acc struct {
		top     dto.TopProduct
		revenue decimal.Decimal
	}
	groups := map[string]*acc{}
	for i := range orders {
		seen := map[string]bool{}
		for _, it := range orders[i].Items {
			key := strings.ToLower(strings.TrimSpace(it.Product))
			if key == "" {
				continue
			}
			g, ok := groups[key]
			if !ok {
				g = &acc{top: dto.TopProduct{Product: it.Product}, revenue: decimal.Zero}
				groups[key] = g
			}
			if !seen[key] {
				g.top.Orders++
				seen[key] = true
			}
			g.top.Quantity += it.Quantity
			g.revenue = g.revenue.Add(it.Amount())
		}
	}

	ranked := make([]dto.TopProduct, 0, len(groups))
	for _, g := range groups {
		g.top.Revenue = g.revenue.Round(2).InexactFloat64()
		ranked = append(ranked, g.top)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Orders != ranked[j].Orders {
			return ranked[i].Orders > ranked[j].Orders
		}
		if ranked[i].Quantity != ranked[j].Quantity {
			return ranked[i].Quantity > ranked[j].Quantity
		}
		return ranked[i].Product < ranked[j].Product
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

func (uc *productUseCase) RecentOrders(ctx context.Context, id string, limit int) ([]model.Order, error) {
	if limit <= 0 {
		limit = defaultRecent
	}
	oid, err := model.ParseID(id)
	if err != nil {
		return nil, err
	}
	p, err := uc.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	orders, _, err := uc.orders.FindAll(ctx, &orderdto.OrderFilters{
		ProductID:   &p.ID,
		ProductName: p.Name,
		Page:        1,
		PageSize:    limit,
	})
	return orders, err
}

// RepairOrderItems re-attaches order items still carrying oldName, or an empty
// name for the current one, to the product.
func (uc *productUseCase) RepairOrderItems(ctx context.Context, id, oldName string) (*dto.RepairResult, error) {
	oid, err := model.ParseID(id)
	if err != nil {
		return nil, err
	}
	p, err := uc.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	oldName = strings.TrimSpace(oldName)
	if oldName == "" {
		oldName = p.Name
	}

	n, err := uc.orders.RenameProductItems(ctx, p.ID, oldName, p.Name)
	if err != nil {
		return nil, err
	}
	return &dto.RepairResult{Product: p.Name, OldName: oldName, Modified: n}, nil
}

// ReconcileStock aligns the variant colors of every stock document of the
// product with the product's colors. Colors the product dropped are removed
// only when their quantity is zero.
func (uc *productUseCase) ReconcileStock(ctx context.Context, id string) ([]dto.StockReconciliation, error) {
	oid, err := model.ParseID(id)
	if err != nil {
		return nil, err
	}
	p, err := uc.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	stocks, _, err := uc.stocks.FindAll(ctx, &stockdto.StockFilters{ProductID: p.ID.Hex(), ProductName: p.Name})
	if err != nil {
		return nil, err
	}

	wanted := map[string]bool{}
	for _, c := range p.Colors() {
		wanted[strings.ToLower(c)] = true
	}

	out := make([]dto.StockReconciliation, 0, len(stocks))
	now := time.Now()
	for i := range stocks {
		s := &stocks[i]
		rec := dto.StockReconciliation{
			StockID: s.ID.Hex(),
			Type:    s.Type,
			Added:   []string{},
			Removed: []string{},
			Kept:    []string{},
		}

		kept := s.Variants[:0]
		for _, v := range s.Variants {
			switch {
			case wanted[strings.ToLower(v.Color)]:
				kept = append(kept, v)
			case v.Quantity == 0:
				rec.Removed = append(rec.Removed, v.Color)
			default:
				rec.Kept = append(rec.Kept, v.Color)
				kept = append(kept, v)
			}
		}
		s.Variants = kept

		for _, c := range p.Colors() {
			if s.Variant(c) == nil {
				s.Variants = append(s.Variants, model.StockVariant{Color: c, Quantity: 0, Unit: p.Unit})
				rec.Added = append(rec.Added, c)
			}
		}

		prevStatus := s.Status
		s.RecomputeStatus()
		if s.ProductID == nil {
			s.ProductID = &p.ID
			rec.Changed = true
		}
		rec.Changed = rec.Changed || len(rec.Added) > 0 || len(rec.Removed) > 0 || prevStatus != s.Status
		rec.Status = s.Status

		if rec.Changed {
			s.UpdatedAt = now
			if err := uc.stocks.Update(ctx, s); err != nil {
				return nil, err
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

var exportHeaders = []string{
	"SKU", "Name", "Category", "Unit", "Color", "Price", "Stock",
	"Min Stock", "Max Stock", "Tags", "Created At",
}

// ExportExcel renders one row per product variant.
func (uc *productUseCase) ExportExcel(ctx context.Context) (*xlsx.File, error) {
	products, _, err := uc.repo.FindAll(ctx, &dto.ProductFilters{SortBy: "name", SortOrder: "asc"})
	if err != nil {
		return nil, err
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return nil, err
	}

	headerRow := sheet.AddRow()
	for _, h := range exportHeaders {
		headerRow.AddCell().SetValue(h)
	}

	for _, p := range products {
		variants := p.Variants
		if len(variants) == 0 {
			variants = []model.ProductVariant{{}}
		}
		for _, v := range variants {
			row := sheet.AddRow()
			row.AddCell().SetValue(p.SKU)
			row.AddCell().SetValue(p.Name)
			row.AddCell().SetValue(p.Category)
			row.AddCell().SetValue(p.Unit)
			row.AddCell().SetValue(v.Color)
			row.AddCell().SetFloat(v.Price)
			row.AddCell().SetFloat(v.Stock)
			row.AddCell().SetFloat(p.MinStock)
			row.AddCell().SetFloat(p.MaxStock)
			row.AddCell().SetValue(strings.Join(p.Tags, ","))
			row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
		}
	}
	return file, nil
}

type searchDoc struct {
	Name        string    `json:"name"`
	SKU         string    `json:"sku"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	Description string    `json:"description"`
	Colors      []string  `json:"colors"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (uc *productUseCase) syncToElastic(ctx context.Context, p *model.Product) {
	if uc.es == nil {
		return
	}
	doc := searchDoc{
		Name:        p.Name,
		SKU:         p.SKU,
		Category:    p.Category,
		Tags:        p.Tags,
		Description: p.Description,
		Colors:      p.Colors(),
		CreatedAt:   p.CreatedAt,
	}
	if err := uc.es.Index(ctx, indexName, p.ID.Hex(), doc); err != nil {
		uc.logger.Error("failed to index product", zap.Error(err))
	}
}

func (uc *productUseCase) generateCacheKey(filters *dto.ProductFilters) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("products:list:%x", md5.Sum(data)), nil
}

func (uc *productUseCase) invalidateProductCache(ctx context.Context) {
	if err := uc.cache.DeletePattern(ctx, listCachePattern); err != nil {
		uc.logger.Warn("failed to invalidate product cache", zap.Error(err))
	}
}

func applyInput(p *model.Product, in *dto.ProductInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return apperror.Validation("name is required")
	}
	unit := in.Unit
	if unit == "" {
		unit = model.ProductUnits[0]
	}
	if !model.IsValidUnit(unit) {
		return apperror.Validation("invalid unit: " + in.Unit)
	}
	if in.MinStock < 0 || in.MaxStock < 0 {
		return apperror.Validation("stock thresholds must not be negative")
	}
	if in.MaxStock > 0 && in.MaxStock < in.MinStock {
		return apperror.Validation("maxStock must not be below minStock")
	}

	seen := map[string]bool{}
	for _, v := range in.Variants {
		color := strings.ToLower(strings.TrimSpace(v.Color))
		if color == "" {
			return apperror.Validation("variant color is required")
		}
		if seen[color] {
			return apperror.Validation("duplicate variant color: " + v.Color)
		}
		if v.Price < 0 || v.Stock < 0 {
			return apperror.Validation("variant price and stock must not be negative")
		}
		seen[color] = true
	}

	p.Name = name
	p.Category = strings.TrimSpace(in.Category)
	p.Unit = unit
	p.Description = in.Description
	p.Variants = append([]model.ProductVariant{}, in.Variants...)
	p.Tags = nonNil(in.Tags)
	p.Images = nonNil(in.Images)
	p.MinStock = in.MinStock
	p.MaxStock = in.MaxStock
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// escapeQuery neutralises query_string operators in user input.
func escapeQuery(q string) string {
	var b strings.Builder
	for _, r := range q {
		if strings.ContainsRune(`+-=&|><!(){}[]^"~*?:\/ `, r) {
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
