package workers

import (
	"context"
	"log"
	"sync"

	"mobide/config"
	"mobide/models"
	"mobide/notify"
)

// Searcher is the slice of the search service the watcher needs.
type Searcher interface {
	Search(ctx context.Context, f models.SearchFilter) (*models.SearchResult, error)
}

// WatchWorker re-runs saved searches and announces listings it has not
// seen before. The first run of a watch only seeds the seen set, so a
// restart does not replay the whole current result page.
type WatchWorker struct {
	svc      Searcher
	notifier notify.Notifier
	watches  []*config.Watch

	mu   sync.Mutex
	seen map[string]map[string]struct{} // watch name -> listing ids
}

func NewWatchWorker(svc Searcher, notifier notify.Notifier, watches []*config.Watch) *WatchWorker {
	return &WatchWorker{
		svc:      svc,
		notifier: notifier,
		watches:  watches,
		seen:     make(map[string]map[string]struct{}),
	}
}

// RunAll runs every configured watch once. A failing watch is logged
// and skipped; the rest still run.
func (w *WatchWorker) RunAll(ctx context.Context) error {
	for _, watch := range w.watches {
		if err := w.runWatch(ctx, watch); err != nil {
			log.Printf("Watch %s failed: %v", watch.Name, err)
		}
	}
	return nil
}

func (w *WatchWorker) runWatch(ctx context.Context, watch *config.Watch) error {
	result, err := w.svc.Search(ctx, watch.Filter())
	if err != nil {
		return err
	}

	fresh := w.markSeen(watch.Name, result.Items)
	if fresh == nil {
		log.Printf("Watch %s seeded with %d listings", watch.Name, len(result.Items))
		return nil
	}

	for i := range fresh {
		log.Printf("Watch %s: new listing %s (%s)", watch.Name, fresh[i].ID, fresh[i].Title)
		if w.notifier == nil {
			continue
		}
		if err := w.notifier.NotifyListing(watch.Name, &fresh[i]); err != nil {
			log.Printf("Watch %s: notify failed for %s: %v", watch.Name, fresh[i].ID, err)
		}
	}
	return nil
}

// markSeen records the batch and returns the listings not seen before.
// A nil return means this was the seeding run for the watch.
func (w *WatchWorker) markSeen(name string, items []models.Listing) []models.Listing {
	w.mu.Lock()
	defer w.mu.Unlock()

	ids, ok := w.seen[name]
	if !ok {
		ids = make(map[string]struct{}, len(items))
		w.seen[name] = ids
		for _, it := range items {
			ids[it.ID] = struct{}{}
		}
		return nil
	}

	var fresh []models.Listing
	for _, it := range items {
		if _, dup := ids[it.ID]; dup {
			continue
		}
		ids[it.ID] = struct{}{}
		fresh = append(fresh, it)
	}
	return fresh
}
