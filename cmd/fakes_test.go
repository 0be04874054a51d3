package cmd

import (
	"context"
	"sync"
	"time"

	"scripthub/catalog"
)

type stubFetcher struct {
	mu    sync.Mutex
	pages map[int]catalog.ResultPage
	err   error
	calls []fetchRequest
}

type fetchRequest struct {
	text string
	page int
}

func (f *stubFetcher) FetchPage(_ context.Context, text string, page int) (catalog.ResultPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fetchRequest{text: text, page: page})
	if f.err != nil {
		return catalog.ResultPage{}, f.err
	}
	return f.pages[page], nil
}

func (f *stubFetcher) lastCall() fetchRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return fetchRequest{}
	}
	return f.calls[len(f.calls)-1]
}

// memStore is an in-memory slot store.
type memStore struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemStore() *memStore {
	return &memStore{values: map[string]string{}}
}

func (s *memStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *memStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *memStore) Take(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	delete(s.values, key)
	return v, ok, nil
}

func (s *memStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func boolPtr(b bool) *bool { return &b }

func sampleEntries() []catalog.ScriptEntry {
	return []catalog.ScriptEntry{
		{
			ID:               "a1",
			Title:            "Infinite Jump",
			Game:             catalog.Game{Name: "Universal Script"},
			Body:             "print('jump')",
			ViewCount:        1500,
			Verified:         true,
			CreatedAt:        time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
			DistributionType: "free",
			IsUniversal:      boolPtr(true),
			IsPatched:        boolPtr(false),
		},
		{
			ID:               "b2",
			Title:            "Auto Farm",
			Game:             catalog.Game{Name: "Blox Fruits"},
			Body:             "loadstring(game:HttpGet(url))()",
			ViewCount:        2_300_000,
			RequiresKey:      true,
			CreatedAt:        time.Date(2024, 6, 2, 8, 0, 0, 0, time.UTC),
			DistributionType: "free",
		},
	}
}
