package middlewares

import (
	"context"

	"github.com/graph-gophers/dataloader/v7"
	"github.com/mmdatafocus/procurement_backend/models"
)

type supplierReader struct {
	store *models.Store
}

func (r *supplierReader) getSuppliers(ctx context.Context, ids []string) []*dataloader.Result[*models.Supplier] {
	if err := ctx.Err(); err != nil {
		return handleError[*models.Supplier](len(ids), err)
	}
	resultMap := make(map[string]models.Supplier)
	for _, s := range r.store.Suppliers() {
		resultMap[s.ID] = s
	}
	return generateLoaderResults(resultMap, ids, "supplier")
}

func GetSupplier(ctx context.Context, id string) (*models.Supplier, error) {
	loaders := For(ctx)
	return loaders.supplierLoader.Load(ctx, id)()
}
