package catalog

import (
	"context"
	"errors"
	"sync"
	"time"
)

type fetchCall struct {
	SearchText string
	Page       int
}

// fakeFetcher serves canned pages keyed by page number and records every call.
type fakeFetcher struct {
	mu    sync.Mutex
	pages map[int]ResultPage
	err   error
	gates map[int]chan struct{} // a fetch for a gated page blocks until the channel is closed
	calls []fetchCall
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{pages: map[int]ResultPage{}, gates: map[int]chan struct{}{}}
}

func (f *fakeFetcher) FetchPage(ctx context.Context, searchText string, page int) (ResultPage, error) {
	f.mu.Lock()
	f.calls = append(f.calls, fetchCall{SearchText: searchText, Page: page})
	gate := f.gates[page]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return ResultPage{}, f.err
	}
	p, ok := f.pages[page]
	if !ok {
		return ResultPage{}, errors.New("no such page")
	}
	return p, nil
}

func (f *fakeFetcher) Calls() []fetchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]fetchCall(nil), f.calls...)
}

func (f *fakeFetcher) setErr(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

type note struct {
	Level string
	Msg   string
}

type recordingNotifier struct {
	mu    sync.Mutex
	notes []note
}

func (n *recordingNotifier) add(level, msg string) {
	n.mu.Lock()
	n.notes = append(n.notes, note{Level: level, Msg: msg})
	n.mu.Unlock()
}

func (n *recordingNotifier) Success(msg string) { n.add("success", msg) }
func (n *recordingNotifier) Error(msg string)   { n.add("error", msg) }
func (n *recordingNotifier) Info(msg string)    { n.add("info", msg) }

func (n *recordingNotifier) Count(level string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := 0
	for _, x := range n.notes {
		if x.Level == level {
			c++
		}
	}
	return c
}

func (n *recordingNotifier) Last() note {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.notes) == 0 {
		return note{}
	}
	return n.notes[len(n.notes)-1]
}

// memSlots is an in-memory slot store.
type memSlots struct {
	mu     sync.Mutex
	values map[string]string
	err    error
}

func newMemSlots() *memSlots { return &memSlots{values: map[string]string{}} }

func (m *memSlots) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", false, m.err
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memSlots) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.values[key] = value
	return nil
}

func (m *memSlots) Take(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", false, m.err
	}
	v, ok := m.values[key]
	delete(m.values, key)
	return v, ok, nil
}

func boolPtr(b bool) *bool { return &b }

func day(n int) time.Time {
	return time.Date(2024, 1, n, 12, 0, 0, 0, time.UTC)
}
