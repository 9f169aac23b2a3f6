// backend-go/internal/export/archiver.go
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shelfwatch/backend-go/internal/reorder"
	"github.com/shelfwatch/backend-go/internal/storage"
)

// Archiver persists a CSV snapshot of a reorder run to object storage so
// finished runs can be audited or fed to PO drafting later.
type Archiver struct {
	store storage.ObjectStorage
}

func NewArchiver(store storage.ObjectStorage) *Archiver {
	return &Archiver{store: store}
}

// Archive uploads the result under reorders/<tenant>/<timestamp>.csv and
// returns the object key.
func (a *Archiver) Archive(ctx context.Context, tenantID string, result *reorder.Result) (string, error) {
	if result == nil || result.Blocked {
		return "", fmt.Errorf("nothing to archive: run was blocked or empty")
	}

	data, err := EncodeCSV(result)
	if err != nil {
		return "", err
	}

	key := SnapshotName(tenantID, result.GeneratedAt)
	if err := a.store.UploadObject(ctx, key, data, "text/csv"); err != nil {
		return "", fmt.Errorf("archiving reorder snapshot: %w", err)
	}

	log.Info().Str("tenant", tenantID).Str("key", key).Int("bytes", len(data)).Msg("reorder snapshot archived")

	return key, nil
}

// EncodeCSV flattens the supplier groups into one row per recommendation,
// preserving group and in-group order.
func EncodeCSV(result *reorder.Result) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"supplier_id", "supplier_name", "can_generate_po",
		"sku", "item_name", "current_stock", "recommended_quantity", "urgency", "reasoning",
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("encoding reorder csv: %w", err)
	}

	for _, group := range result.Groups {
		for _, item := range group.Items {
			row := []string{
				group.SupplierID,
				group.SupplierName,
				strconv.FormatBool(group.CanGeneratePO),
				item.SKU,
				item.ItemName,
				strconv.Itoa(item.CurrentStock),
				strconv.Itoa(item.RecommendedQuantity),
				string(item.Urgency),
				item.Reasoning,
			}
			if err := w.Write(row); err != nil {
				return nil, fmt.Errorf("encoding reorder csv: %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("encoding reorder csv: %w", err)
	}

	return buf.Bytes(), nil
}

// SnapshotName is the object key prefix for one tenant's archives.
func SnapshotName(tenantID string, at time.Time) string {
	return fmt.Sprintf("reorders/%s/%s.csv", tenantID, at.UTC().Format("20060102T150405Z"))
}
