package workers

import (
	"context"
	"errors"
	"testing"

	"mobide/config"
	"mobide/models"
)

type fakeSearcher struct {
	results map[string]*models.SearchResult
	err     error
}

func (f *fakeSearcher) Search(_ context.Context, filter models.SearchFilter) (*models.SearchResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	if r, ok := f.results[filter.Brand]; ok {
		return r, nil
	}
	return &models.SearchResult{Items: []models.Listing{}}, nil
}

type fakeNotifier struct {
	notified []string
}

func (f *fakeNotifier) NotifyListing(watchName string, l *models.Listing) error {
	f.notified = append(f.notified, watchName+":"+l.ID)
	return nil
}

func listings(ids ...string) []models.Listing {
	out := make([]models.Listing, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Listing{ID: id, Title: "car " + id})
	}
	return out
}

func TestWatchWorkerSeedsSilently(t *testing.T) {
	searcher := &fakeSearcher{results: map[string]*models.SearchResult{
		"3500": {Items: listings("1", "2")},
	}}
	notifier := &fakeNotifier{}
	w := NewWatchWorker(searcher, notifier, []*config.Watch{{Name: "bmw", Brand: "3500"}})

	w.RunAll(context.Background())

	if len(notifier.notified) != 0 {
		t.Fatalf("seeding run should not notify, got %v", notifier.notified)
	}
}

func TestWatchWorkerNotifiesNewListingsOnce(t *testing.T) {
	searcher := &fakeSearcher{results: map[string]*models.SearchResult{
		"3500": {Items: listings("1", "2")},
	}}
	notifier := &fakeNotifier{}
	w := NewWatchWorker(searcher, notifier, []*config.Watch{{Name: "bmw", Brand: "3500"}})

	w.RunAll(context.Background())

	searcher.results["3500"] = &models.SearchResult{Items: listings("1", "2", "3")}
	w.RunAll(context.Background())

	if len(notifier.notified) != 1 || notifier.notified[0] != "bmw:3" {
		t.Fatalf("expected one notification for listing 3, got %v", notifier.notified)
	}

	// Same page again: nothing new.
	w.RunAll(context.Background())
	if len(notifier.notified) != 1 {
		t.Fatalf("repeat run should not re-notify, got %v", notifier.notified)
	}
}

func TestWatchWorkerKeepsRunningAfterFailure(t *testing.T) {
	searcher := &fakeSearcher{err: errors.New("blocked")}
	w := NewWatchWorker(searcher, &fakeNotifier{}, []*config.Watch{{Name: "bmw", Brand: "3500"}})

	if err := w.RunAll(context.Background()); err != nil {
		t.Fatalf("RunAll should swallow per-watch errors, got %v", err)
	}
}

func TestWatchWorkerWithoutNotifier(t *testing.T) {
	searcher := &fakeSearcher{results: map[string]*models.SearchResult{
		"3500": {Items: listings("1")},
	}}
	w := NewWatchWorker(searcher, nil, []*config.Watch{{Name: "bmw", Brand: "3500"}})

	w.RunAll(context.Background())
	searcher.results["3500"] = &models.SearchResult{Items: listings("1", "2")}

	// Must not panic without a notifier.
	if err := w.RunAll(context.Background()); err != nil {
		t.Fatalf("RunAll: %v", err)
	}
}
