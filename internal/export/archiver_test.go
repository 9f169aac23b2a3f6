package export

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shelfwatch/backend-go/internal/domain"
	"github.com/shelfwatch/backend-go/internal/reorder"
	"github.com/shelfwatch/backend-go/internal/storage"
)

type capturingStorage struct {
	key         string
	data        []byte
	contentType string
	uploadErr   error
}

func (c *capturingStorage) ListObjects(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	return nil, nil
}

func (c *capturingStorage) UploadObject(ctx context.Context, key string, data []byte, contentType string) error {
	c.key = key
	c.data = data
	c.contentType = contentType
	return c.uploadErr
}

func sampleResult(at time.Time) *reorder.Result {
	email := "a@example.com"
	return &reorder.Result{
		Groups: []domain.ReorderListBySupplier{
			{
				SupplierID:    "supA",
				SupplierName:  "Supplier A",
				SupplierEmail: &email,
				CanGeneratePO: true,
				Items: []domain.ReorderRecommendation{
					{SKU: "A1", ItemName: "Widget", CurrentStock: 0, RecommendedQuantity: 70, Urgency: domain.UrgencyUrgent, Reasoning: "Out of stock with ongoing demand."},
					{SKU: "A2", ItemName: "Gadget", CurrentStock: 12, RecommendedQuantity: 30, Urgency: domain.UrgencyLow, Reasoning: "Comfortable cover."},
				},
			},
			{
				SupplierID:   domain.UnassignedSupplierID,
				SupplierName: "Unassigned",
				Items: []domain.ReorderRecommendation{
					{SKU: "X1", ItemName: "Orphan", CurrentStock: 3, RecommendedQuantity: 10, Urgency: domain.UrgencyHigh, Reasoning: "Stockout inside lead time."},
				},
			},
		},
		GeneratedAt: at,
	}
}

func TestEncodeCSVFlattensGroupsInOrder(t *testing.T) {
	data, err := EncodeCSV(sampleResult(time.Now()))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	require.Equal(t, "supplier_id,supplier_name,can_generate_po,sku,item_name,current_stock,recommended_quantity,urgency,reasoning", lines[0])
	require.Equal(t, "supA,Supplier A,true,A1,Widget,0,70,urgent,Out of stock with ongoing demand.", lines[1])
	require.Equal(t, "supA,Supplier A,true,A2,Gadget,12,30,low,Comfortable cover.", lines[2])
	require.True(t, strings.HasPrefix(lines[3], "unassigned,Unassigned,false,X1,"))
}

func TestEncodeCSVEmptyResultIsHeaderOnly(t *testing.T) {
	data, err := EncodeCSV(&reorder.Result{})
	require.NoError(t, err)
	require.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 1)
}

func TestArchiveUploadsUnderTenantKey(t *testing.T) {
	store := &capturingStorage{}
	at := time.Date(2026, 8, 30, 10, 30, 0, 0, time.UTC)

	key, err := NewArchiver(store).Archive(context.Background(), "t1", sampleResult(at))
	require.NoError(t, err)
	require.Equal(t, "reorders/t1/20260830T103000Z.csv", key)
	require.Equal(t, key, store.key)
	require.Equal(t, "text/csv", store.contentType)
	require.NotEmpty(t, store.data)
}

func TestArchiveRefusesBlockedResult(t *testing.T) {
	store := &capturingStorage{}
	_, err := NewArchiver(store).Archive(context.Background(), "t1", &reorder.Result{Blocked: true})
	require.Error(t, err)
	require.Empty(t, store.key)
}

func TestArchiveWrapsUploadError(t *testing.T) {
	boom := errors.New("bucket gone")
	store := &capturingStorage{uploadErr: boom}

	_, err := NewArchiver(store).Archive(context.Background(), "t1", sampleResult(time.Now()))
	require.ErrorIs(t, err, boom)
}
