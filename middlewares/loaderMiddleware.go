package middlewares

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/graph-gophers/dataloader/v7"
	"github.com/mmdatafocus/procurement_backend/models"
	"github.com/mmdatafocus/procurement_backend/utils"
)

type ctxKey string

const (
	loadersKey = ctxKey("dataloaders")
)

// Loaders wrap your data loaders to inject via middleware
type Loaders struct {
	supplierLoader      *dataloader.Loader[string, *models.Supplier]
	inventoryItemLoader *dataloader.Loader[string, *models.InventoryItem]
	journalLoader       *dataloader.Loader[string, []*models.JournalEntry]
}

// NewLoaders instantiates data loaders for the middleware
func NewLoaders(store *models.Store) *Loaders {
	supplierReader := &supplierReader{store: store}
	inventoryItemReader := &inventoryItemReader{store: store}
	journalReader := &journalReader{store: store}

	return &Loaders{
		supplierLoader:      dataloader.NewBatchedLoader(supplierReader.getSuppliers, dataloader.WithWait[string, *models.Supplier](time.Millisecond)),
		inventoryItemLoader: dataloader.NewBatchedLoader(inventoryItemReader.getInventoryItems, dataloader.WithWait[string, *models.InventoryItem](time.Millisecond)),
		journalLoader:       dataloader.NewBatchedLoader(journalReader.getJournals, dataloader.WithWait[string, []*models.JournalEntry](time.Millisecond)),
	}
}

func LoaderMiddleware(store *models.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		loader := NewLoaders(store)
		ctx := context.WithValue(c.Request.Context(), loadersKey, loader)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// For returns the loaders of the current request.
func For(ctx context.Context) *Loaders {
	return ctx.Value(loadersKey).(*Loaders)
}

// handleError creates array of result with the same error repeated for as many items requested
func handleError[T any](itemsLength int, err error) []*dataloader.Result[T] {
	result := make([]*dataloader.Result[T], itemsLength)
	for i := 0; i < itemsLength; i++ {
		result[i] = &dataloader.Result[T]{Error: err}
	}
	return result
}

// turns a lookup map into dataloader results, keeping the order of ids;
// ids missing from the map resolve to a not-found error
func generateLoaderResults[T any](resultMap map[string]T, ids []string, kind string) []*dataloader.Result[*T] {
	loaderResults := make([]*dataloader.Result[*T], 0, len(ids))
	for _, id := range ids {
		data, ok := resultMap[id]
		if !ok {
			loaderResults = append(loaderResults, &dataloader.Result[*T]{
				Error: fmt.Errorf("%s %s: %w", kind, id, utils.ErrorRecordNotFound),
			})
			continue
		}
		loaderResults = append(loaderResults, &dataloader.Result[*T]{Data: &data})
	}
	return loaderResults
}

// each id has many related results
func generateLoaderArrayResults[T any](results []T, referenceIds []string, referenceOf func(T) string) (loaderResults []*dataloader.Result[[]*T]) {
	resultMap := make(map[string][]*T)
	for _, result := range results {
		// creating a new variable every turn, to avoid pointing to the adddress of result
		copy := result
		resultMap[referenceOf(result)] = append(resultMap[referenceOf(result)], &copy)
	}
	for _, id := range referenceIds {
		resultArray := resultMap[id]
		loaderResults = append(loaderResults, &dataloader.Result[[]*T]{Data: resultArray})
	}
	return loaderResults
}
