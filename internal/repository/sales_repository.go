// backend-go/internal/repository/sales_repository.go
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shelfwatch/backend-go/internal/domain"
)

type SalesRepository interface {
	// GetSalesForSKU returns the trailing-window sale records for one SKU.
	GetSalesForSKU(ctx context.Context, tenantID, sku string, windowDays int) ([]domain.SaleRecord, error)

	// GetSalesForSKUs fetches the trailing-window history for every SKU in
	// one round trip, keyed by SKU. SKUs with no sales are absent from the
	// result rather than mapped to an empty slice.
	GetSalesForSKUs(ctx context.Context, tenantID string, skus []string, windowDays int) (map[string][]domain.SaleRecord, error)
}

type salesRepository struct {
	db *sqlx.DB
}

func NewSalesRepository(db *sqlx.DB) SalesRepository {
	return &salesRepository{db: db}
}

func (r *salesRepository) GetSalesForSKU(ctx context.Context, tenantID, sku string, windowDays int) ([]domain.SaleRecord, error) {
	query := `
		SELECT sku, quantity_sold, sale_date, unit_price
		FROM sale_records
		WHERE tenant_id = $1
		  AND sku = $2
		  AND sale_date >= $3
		ORDER BY sale_date
	`

	var records []domain.SaleRecord
	since := windowStart(windowDays)
	if err := r.db.SelectContext(ctx, &records, query, tenantID, sku, since); err != nil {
		return nil, fmt.Errorf("error getting sales for sku %s: %w", sku, err)
	}

	return records, nil
}

func (r *salesRepository) GetSalesForSKUs(ctx context.Context, tenantID string, skus []string, windowDays int) (map[string][]domain.SaleRecord, error) {
	if len(skus) == 0 {
		return map[string][]domain.SaleRecord{}, nil
	}

	query := `
		SELECT sku, quantity_sold, sale_date, unit_price
		FROM sale_records
		WHERE tenant_id = $1
		  AND sku = ANY($2::text[])
		  AND sale_date >= $3
		ORDER BY sku, sale_date
	`

	var records []domain.SaleRecord
	since := windowStart(windowDays)
	if err := r.db.SelectContext(ctx, &records, query, tenantID, pq.Array(skus), since); err != nil {
		return nil, fmt.Errorf("error getting sales for %d skus: %w", len(skus), err)
	}

	bySKU := make(map[string][]domain.SaleRecord, len(skus))
	for _, rec := range records {
		bySKU[rec.SKU] = append(bySKU[rec.SKU], rec)
	}

	return bySKU, nil
}

func windowStart(windowDays int) time.Time {
	if windowDays <= 0 {
		windowDays = 30
	}

	return time.Now().AddDate(0, 0, -windowDays)
}
