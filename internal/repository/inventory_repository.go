// backend-go/internal/repository/inventory_repository.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shelfwatch/backend-go/internal/domain"
)

type InventoryRepository interface {
	GetInventoryItems(ctx context.Context, tenantID string) ([]domain.InventoryItem, error)
	GetInventoryItem(ctx context.Context, tenantID, sku string) (*domain.InventoryItem, error)
}

type inventoryRepository struct {
	db *sqlx.DB
}

func NewInventoryRepository(db *sqlx.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) GetInventoryItems(ctx context.Context, tenantID string) ([]domain.InventoryItem, error) {
	query := `
		SELECT sku, name, current_stock, supplier_id, lead_time_days, unit_cost
		FROM inventory_items
		WHERE tenant_id = $1
		ORDER BY sku
	`

	var items []domain.InventoryItem
	if err := r.db.SelectContext(ctx, &items, query, tenantID); err != nil {
		return nil, fmt.Errorf("error getting inventory items: %w", err)
	}

	return items, nil
}

func (r *inventoryRepository) GetInventoryItem(ctx context.Context, tenantID, sku string) (*domain.InventoryItem, error) {
	query := `
		SELECT sku, name, current_stock, supplier_id, lead_time_days, unit_cost
		FROM inventory_items
		WHERE tenant_id = $1 AND sku = $2
	`

	var item domain.InventoryItem
	if err := r.db.GetContext(ctx, &item, query, tenantID, sku); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("inventory item %s: %w", sku, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("error getting inventory item %s: %w", sku, err)
	}

	return &item, nil
}
