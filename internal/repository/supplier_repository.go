// backend-go/internal/repository/supplier_repository.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shelfwatch/backend-go/internal/domain"
)

type SupplierRepository interface {
	GetSupplier(ctx context.Context, tenantID, id string) (*domain.Supplier, error)

	// GetSuppliers fetches every referenced supplier in one round trip,
	// keyed by id. Unknown ids are simply absent from the result.
	GetSuppliers(ctx context.Context, tenantID string, ids []string) (map[string]domain.Supplier, error)
}

type supplierRepository struct {
	db *sqlx.DB
}

func NewSupplierRepository(db *sqlx.DB) SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) GetSupplier(ctx context.Context, tenantID, id string) (*domain.Supplier, error) {
	query := `
		SELECT id, name, contact_email, contact_phone, lead_time_days
		FROM suppliers
		WHERE tenant_id = $1 AND id = $2
	`

	var supplier domain.Supplier
	if err := r.db.GetContext(ctx, &supplier, query, tenantID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("supplier %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("error getting supplier %s: %w", id, err)
	}

	return &supplier, nil
}

func (r *supplierRepository) GetSuppliers(ctx context.Context, tenantID string, ids []string) (map[string]domain.Supplier, error) {
	if len(ids) == 0 {
		return map[string]domain.Supplier{}, nil
	}

	query := `
		SELECT id, name, contact_email, contact_phone, lead_time_days
		FROM suppliers
		WHERE tenant_id = $1 AND id = ANY($2::text[])
	`

	var suppliers []domain.Supplier
	if err := r.db.SelectContext(ctx, &suppliers, query, tenantID, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("error getting %d suppliers: %w", len(ids), err)
	}

	byID := make(map[string]domain.Supplier, len(suppliers))
	for _, s := range suppliers {
		byID[s.ID] = s
	}

	return byID, nil
}
