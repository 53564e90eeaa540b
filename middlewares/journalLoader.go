package middlewares

import (
	"context"

	"github.com/graph-gophers/dataloader/v7"
	"github.com/mmdatafocus/procurement_backend/models"
	"github.com/mmdatafocus/procurement_backend/utils"
)

type journalReader struct {
	store *models.Store
}

func (r *journalReader) getJournals(ctx context.Context, refIds []string) []*dataloader.Result[[]*models.JournalEntry] {
	if err := ctx.Err(); err != nil {
		return handleError[[]*models.JournalEntry](len(refIds), err)
	}
	var journals []models.JournalEntry
	for _, refId := range utils.UniqueSlice(refIds) {
		journals = append(journals, r.store.JournalsFor(refId)...)
	}
	return generateLoaderArrayResults(journals, refIds, func(j models.JournalEntry) string { return j.RefId })
}

// GetOrderJournals returns the journal entries booked against an order.
func GetOrderJournals(ctx context.Context, orderId string) ([]*models.JournalEntry, error) {
	loaders := For(ctx)
	return loaders.journalLoader.Load(ctx, orderId)()
}
