package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/textile-erp-service/internal/adjustment/dto"
	"github.com/fekuna/textile-erp-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var adjustmentColumns = []string{
	"id", "stock_id", "product", "stock_type", "color",
	"prev_quantity", "new_quantity", "reason", "created_at",
}

func newMockRepo(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPGRepository(sqlx.NewDb(db, "pgx")), mock
}

func TestCreate(t *testing.T) {
	repo, mock := newMockRepo(t)
	at := time.Date(2024, time.May, 2, 9, 0, 0, 0, time.UTC)
	a := &model.Adjustment{
		ID: "7d1c7a52-1b43-4d3a-9e45-5a3f0c9b2e11", StockID: "65f0c0ffee0000000000abcd", Product: "Lawn",
		StockType: "design", Color: "Red", PrevQuantity: 10, NewQuantity: 4, Reason: "damaged", CreatedAt: at,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO stock_adjustments")).
		WithArgs(a.ID, a.StockID, a.Product, a.StockType, a.Color, a.PrevQuantity, a.NewQuantity, a.Reason, at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), a))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindAllFiltersAndPages(t *testing.T) {
	repo, mock := newMockRepo(t)
	at := time.Date(2024, time.May, 2, 9, 0, 0, 0, time.UTC)

	where := " WHERE stock_id = $1 AND product ILIKE $2 AND LOWER(color) = LOWER($3)"
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM stock_adjustments"+where)).
		WithArgs("65f0c0ffee0000000000abcd", "%lawn%", "red").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(23)))
	mock.ExpectPrepare(regexp.QuoteMeta("SELECT * FROM stock_adjustments" + where + " ORDER BY created_at DESC LIMIT 10 OFFSET 20")).
		ExpectQuery().
		WithArgs("65f0c0ffee0000000000abcd", "%lawn%", "red").
		WillReturnRows(sqlmock.NewRows(adjustmentColumns).
			AddRow("a1", "65f0c0ffee0000000000abcd", "Lawn", "design", "Red", 10.0, 4.0, "damaged", at).
			AddRow("a2", "65f0c0ffee0000000000abcd", "Lawn", "design", "Red", 4.0, 9.0, "recount", at))

	items, total, err := repo.FindAll(context.Background(), &dto.AdjustmentFilters{
		StockID: "65f0c0ffee0000000000abcd", Product: "lawn", Color: "red", Page: 3, PageSize: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(23), total)
	require.Len(t, items, 2)
	assert.Equal(t, "a1", items[0].ID)
	assert.Equal(t, -6.0, items[0].Delta())
	assert.Equal(t, at, items[1].CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindAllWithoutFilters(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`^SELECT count\(\*\) FROM stock_adjustments$`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectPrepare(`^SELECT \* FROM stock_adjustments ORDER BY created_at DESC$`).
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows(adjustmentColumns))

	items, total, err := repo.FindAll(context.Background(), &dto.AdjustmentFilters{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindAllCountError(t *testing.T) {
	repo, mock := newMockRepo(t)
	boom := errors.New("connection reset")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM stock_adjustments")).WillReturnError(boom)

	_, _, err := repo.FindAll(context.Background(), &dto.AdjustmentFilters{Page: 1, PageSize: 10})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovementReportBuckets(t *testing.T) {
	repo, mock := newMockRepo(t)
	from := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.May, 31, 0, 0, 0, 0, time.UTC)
	may1 := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	may2 := time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT date_trunc($1, created_at) AS period") +
		`.*` + regexp.QuoteMeta("FROM stock_adjustments WHERE stock_id = $2 AND created_at >= $3 AND created_at <= $4 GROUP BY period ORDER BY period")).
		ExpectQuery().
		WithArgs(dto.IntervalDay, "65f0c0ffee0000000000abcd", from, to).
		WillReturnRows(sqlmock.NewRows([]string{"period", "adjustments", "delta"}).
			AddRow(may1, int64(2), -6.5).
			AddRow(may2, int64(1), 3.0))

	buckets, err := repo.MovementReport(context.Background(), &dto.ReportFilters{
		Interval: dto.IntervalDay, StockID: "65f0c0ffee0000000000abcd", From: &from, To: &to,
	})
	require.NoError(t, err)
	assert.Equal(t, []model.MovementBucket{
		{Period: may1, Adjustments: 2, Delta: -6.5},
		{Period: may2, Adjustments: 1, Delta: 3},
	}, buckets)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovementReportWholeLedger(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectPrepare(regexp.QuoteMeta("FROM stock_adjustments GROUP BY period ORDER BY period")).
		ExpectQuery().
		WithArgs(dto.IntervalMonth).
		WillReturnRows(sqlmock.NewRows([]string{"period", "adjustments", "delta"}))

	buckets, err := repo.MovementReport(context.Background(), &dto.ReportFilters{Interval: dto.IntervalMonth})
	require.NoError(t, err)
	assert.Empty(t, buckets)
	assert.NoError(t, mock.ExpectationsWereMet())
}
