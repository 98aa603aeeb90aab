package share

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/bookmarks-backend/internal/domain"
)

const (
	maxBatch = 100
	wait     = 5 * time.Millisecond
)

type itemsByGroupRepo interface {
	ListByGroupIDs(ctx context.Context, groupIDs []uuid.UUID) ([]domain.Item, error)
}

// newItemsLoader returns a loader that fetches the items of many groups in
// one query per batch. A loader lives for one resolve; a batch is sent as
// soon as all expected keys have joined it.
func newItemsLoader(repo itemsByGroupRepo, expected int) *dataloader.Loader[uuid.UUID, []domain.Item] {
	capacity := min(max(expected, 1), maxBatch)
	return dataloader.NewBatchedLoader(
		itemsBatchFn(repo),
		dataloader.WithWait[uuid.UUID, []domain.Item](wait),
		dataloader.WithBatchCapacity[uuid.UUID, []domain.Item](capacity),
	)
}

func itemsBatchFn(repo itemsByGroupRepo) dataloader.BatchFunc[uuid.UUID, []domain.Item] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[[]domain.Item] {
		items, err := repo.ListByGroupIDs(ctx, keys)
		if err != nil {
			results := make([]*dataloader.Result[[]domain.Item], len(keys))
			for i := range results {
				results[i] = &dataloader.Result[[]domain.Item]{Error: err}
			}
			return results
		}

		grouped := make(map[uuid.UUID][]domain.Item, len(keys))
		for _, it := range items {
			grouped[it.GroupID] = append(grouped[it.GroupID], it)
		}

		results := make([]*dataloader.Result[[]domain.Item], len(keys))
		for i, key := range keys {
			data, ok := grouped[key]
			if !ok {
				data = []domain.Item{}
			}
			results[i] = &dataloader.Result[[]domain.Item]{Data: data}
		}
		return results
	}
}
