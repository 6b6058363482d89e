package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/fekuna/textile-erp-service/internal/adjustment/dto"
	"github.com/fekuna/textile-erp-service/internal/model"
	"github.com/fekuna/textile-erp-service/pkg/pagination"
	"github.com/jmoiron/sqlx"
)

const schema = `
CREATE TABLE IF NOT EXISTS stock_adjustments (
    id            UUID PRIMARY KEY,
    stock_id      VARCHAR(24) NOT NULL,
    product       TEXT NOT NULL,
    stock_type    TEXT NOT NULL,
    color         TEXT NOT NULL,
    prev_quantity DOUBLE PRECISION NOT NULL,
    new_quantity  DOUBLE PRECISION NOT NULL,
    reason        TEXT NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_stock_adjustments_stock ON stock_adjustments (stock_id);
CREATE INDEX IF NOT EXISTS idx_stock_adjustments_created ON stock_adjustments (created_at DESC);
`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, schema)
	return err
}

func (r *PGRepository) Create(ctx context.Context, a *model.Adjustment) error {
	query := `
        INSERT INTO stock_adjustments (
            id, stock_id, product, stock_type, color,
            prev_quantity, new_quantity, reason, created_at
        )
        VALUES (
            :id, :stock_id, :product, :stock_type, :color,
            :prev_quantity, :new_quantity, :reason, :created_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, a)
	return err
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.AdjustmentFilters) ([]model.Adjustment, int64, error) {
	items := []model.Adjustment{}
	var count int64

	conditions := []string{}
	args := map[string]interface{}{}

	if f.StockID != "" {
		conditions = append(conditions, "stock_id = :stock_id")
		args["stock_id"] = f.StockID
	}
	if f.Product != "" {
		conditions = append(conditions, "product ILIKE :product")
		args["product"] = "%" + f.Product + "%"
	}
	if f.Color != "" {
		conditions = append(conditions, "LOWER(color) = LOWER(:color)")
		args["color"] = f.Color
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM stock_adjustments" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			rows.Close()
			return nil, 0, err
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, 0, err
	}
	rows.Close()

	query := "SELECT * FROM stock_adjustments" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, pagination.Offset(f.Page, f.PageSize))
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &items, args)
	return items, count, err
}

func (r *PGRepository) MovementReport(ctx context.Context, f *dto.ReportFilters) ([]model.MovementBucket, error) {
	buckets := []model.MovementBucket{}

	conditions := []string{}
	args := map[string]interface{}{"interval": f.Interval}

	if f.StockID != "" {
		conditions = append(conditions, "stock_id = :stock_id")
		args["stock_id"] = f.StockID
	}
	if f.From != nil {
		conditions = append(conditions, "created_at >= :from")
		args["from"] = *f.From
	}
	if f.To != nil {
		conditions = append(conditions, "created_at <= :to")
		args["to"] = *f.To
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	query := `
        SELECT date_trunc(:interval, created_at) AS period,
               count(*) AS adjustments,
               COALESCE(SUM(new_quantity - prev_quantity), 0) AS delta
        FROM stock_adjustments` + whereClause + `
        GROUP BY period
        ORDER BY period`

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &buckets, args)
	return buckets, err
}
