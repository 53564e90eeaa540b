package middlewares

import (
	"context"

	"github.com/graph-gophers/dataloader/v7"
	"github.com/mmdatafocus/procurement_backend/models"
)

type inventoryItemReader struct {
	store *models.Store
}

func (r *inventoryItemReader) getInventoryItems(ctx context.Context, ids []string) []*dataloader.Result[*models.InventoryItem] {
	if err := ctx.Err(); err != nil {
		return handleError[*models.InventoryItem](len(ids), err)
	}
	resultMap := make(map[string]models.InventoryItem)
	for _, item := range r.store.Inventory() {
		resultMap[item.ID] = item
	}
	return generateLoaderResults(resultMap, ids, "item")
}

func GetInventoryItems(ctx context.Context, ids []string) ([]*models.InventoryItem, []error) {
	loaders := For(ctx)
	return loaders.inventoryItemLoader.LoadMany(ctx, ids)()
}
