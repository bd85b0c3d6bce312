package loaders

import (
	"context"
	"time"

	"github.com/graph-gophers/dataloader/v7"
	"github.com/shareit/backend/internal/domain/entities"
	"github.com/shareit/backend/internal/domain/repositories"
)

// batchWait bounds how long a partially filled batch waits for more keys
const batchWait = 2 * time.Millisecond

// FulfillingItemsLoader resolves, per item request ID, the items listed in answer to it
type FulfillingItemsLoader = dataloader.Loader[int64, []*entities.Item]

// NewFulfillingItemsLoader creates a loader that answers a whole batch of
// request IDs with one item query. Loaders cache results, so create one per operation.
func NewFulfillingItemsLoader(items repositories.ItemRepository, batchCapacity int) *FulfillingItemsLoader {
	batch := func(ctx context.Context, requestIDs []int64) []*dataloader.Result[[]*entities.Item] {
		results := make([]*dataloader.Result[[]*entities.Item], len(requestIDs))

		found, err := items.ListByRequestIDs(ctx, requestIDs)
		if err != nil {
			for i := range results {
				results[i] = &dataloader.Result[[]*entities.Item]{Error: err}
			}
			return results
		}

		byRequest := make(map[int64][]*entities.Item, len(requestIDs))
		for _, item := range found {
			if item.RequestID != nil {
				byRequest[*item.RequestID] = append(byRequest[*item.RequestID], item)
			}
		}

		for i, id := range requestIDs {
			matched := byRequest[id]
			if matched == nil {
				matched = []*entities.Item{}
			}
			results[i] = &dataloader.Result[[]*entities.Item]{Data: matched}
		}
		return results
	}

	opts := []dataloader.Option[int64, []*entities.Item]{
		dataloader.WithWait[int64, []*entities.Item](batchWait),
	}
	if batchCapacity > 0 {
		opts = append(opts, dataloader.WithBatchCapacity[int64, []*entities.Item](batchCapacity))
	}
	return dataloader.NewBatchedLoader(batch, opts...)
}

// LoadFulfillingItems resolves the items of every request ID in one batch.
// The result is aligned with requestIDs.
func LoadFulfillingItems(ctx context.Context, items repositories.ItemRepository, requestIDs []int64) ([][]*entities.Item, error) {
	if len(requestIDs) == 0 {
		return nil, nil
	}

	loader := NewFulfillingItemsLoader(items, len(requestIDs))
	results, errs := loader.LoadMany(ctx, requestIDs)()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
