package catalog

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Fetcher retrieves one page of the remote catalog.
type Fetcher interface {
	FetchPage(ctx context.Context, searchText string, page int) (ResultPage, error)
}

// Notifier shows transient messages to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Info(msg string)
}

// Clipboard receives copied script bodies.
type Clipboard interface {
	WriteAll(text string) error
}

// ClipboardFunc adapts a plain function, such as clipboard.WriteAll, to Clipboard.
type ClipboardFunc func(text string) error

func (f ClipboardFunc) WriteAll(text string) error { return f(text) }

// Deps are the collaborators a Browser is built from.
type Deps struct {
	Fetcher   Fetcher
	Notifier  Notifier
	Clipboard Clipboard
	Slots     SlotWriter
	Log       *zap.SugaredLogger
	Query     QueryState // initial state; zero value means DefaultQueryState
}

// Browser is the catalog browsing component. It is safe for concurrent use;
// fetches run on the caller's goroutine and may overlap.
type Browser struct {
	fetcher   Fetcher
	notifier  Notifier
	clipboard Clipboard
	slots     SlotWriter
	log       *zap.SugaredLogger

	mu        sync.Mutex
	query     QueryState
	page      ResultPage
	inflight  int
	hasLoaded bool
	seq       uint64 // last issued fetch
}

// NewBrowser builds a Browser. The result page starts empty with one page.
func NewBrowser(deps Deps) *Browser {
	q := deps.Query
	if q.PageNumber < 1 {
		q.PageNumber = 1
	}
	if q.SortMode == "" {
		q.SortMode = SortRelevance
	}
	log := deps.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Browser{
		fetcher:   deps.Fetcher,
		notifier:  deps.Notifier,
		clipboard: deps.Clipboard,
		slots:     deps.Slots,
		log:       log,
		query:     q,
		page:      ResultPage{TotalPages: 1},
	}
}

// Mount loads the first page of the unfiltered listing.
func (b *Browser) Mount(ctx context.Context) error {
	b.mu.Lock()
	b.query.SearchText = ""
	b.query.PageNumber = 1
	b.mu.Unlock()
	return b.fetch(ctx, "", 1)
}

// Search resets to page one and fetches with the current search text.
func (b *Browser) Search(ctx context.Context) error {
	b.mu.Lock()
	b.query.PageNumber = 1
	text := b.query.SearchText
	b.mu.Unlock()
	return b.fetch(ctx, text, 1)
}

// NextPage fetches the following page. It reports false without fetching
// when already on the last known page.
func (b *Browser) NextPage(ctx context.Context) (bool, error) {
	return b.turnPage(ctx, 1)
}

// PrevPage fetches the preceding page. It reports false without fetching
// when already on page one.
func (b *Browser) PrevPage(ctx context.Context) (bool, error) {
	return b.turnPage(ctx, -1)
}

func (b *Browser) turnPage(ctx context.Context, delta int) (bool, error) {
	b.mu.Lock()
	if (delta < 0 && !b.canPrev()) || (delta > 0 && !b.canNext()) {
		b.mu.Unlock()
		return false, nil
	}
	page := clamp(b.query.PageNumber+delta, 1, b.page.TotalPages)
	b.query.PageNumber = page
	text := b.query.SearchText
	b.mu.Unlock()
	return true, b.fetch(ctx, text, page)
}

func (b *Browser) fetch(ctx context.Context, text string, page int) error {
	b.mu.Lock()
	b.seq++
	seq := b.seq
	b.inflight++
	b.mu.Unlock()

	b.log.Infow("Fetch started", zap.Uint64("seq", seq), zap.String("query", text), zap.Int("page", page))
	result, err := b.fetcher.FetchPage(ctx, text, page)

	b.mu.Lock()
	b.inflight--
	b.hasLoaded = true
	latest := seq == b.seq
	if err == nil && latest {
		b.page = ResultPage{Entries: result.Entries, TotalPages: max(result.TotalPages, 1)}
	}
	b.mu.Unlock()

	switch {
	case !latest:
		b.log.Infow("Discarding superseded fetch result", zap.Uint64("seq", seq), zap.Error(err))
		return nil
	case err != nil:
		b.log.Errorw("Failed to fetch scripts", zap.Uint64("seq", seq), zap.Error(err))
		b.notify().Error("Failed to fetch scripts from ScriptBlox")
		return err
	}
	return nil
}

// Copy places the entry's body on the clipboard.
func (b *Browser) Copy(e ScriptEntry) error {
	if b.clipboard == nil {
		return fmt.Errorf("no clipboard available")
	}
	if err := b.clipboard.WriteAll(e.Body); err != nil {
		b.log.Warnw("Failed to copy script to clipboard", zap.String("id", e.ID), zap.Error(err))
		return err
	}
	b.notify().Success(fmt.Sprintf("Copied %s to clipboard", e.Title))
	return nil
}

// SendToEditor writes the entry into the hand-off slot, replacing anything already there.
func (b *Browser) SendToEditor(e ScriptEntry) error {
	raw, err := EncodeHandoff(e)
	if err == nil {
		if b.slots == nil {
			err = fmt.Errorf("no hand-off slot available")
		} else {
			err = b.slots.Set(HandoffKey, raw)
		}
	}
	if err != nil {
		b.log.Errorw("Failed to write hand-off slot", zap.String("id", e.ID), zap.Error(err))
		b.notify().Error(fmt.Sprintf("Failed to load %s into executor tab", e.Title))
		return err
	}
	b.log.Infow("Script handed off to editor", zap.String("id", e.ID), zap.String("title", e.Title))
	b.notify().Success(fmt.Sprintf("%s loaded into executor tab", e.Title))
	return nil
}

// SetSearchText updates the search text; nothing is fetched until Search.
func (b *Browser) SetSearchText(text string) {
	b.mu.Lock()
	b.query.SearchText = text
	b.mu.Unlock()
}

// SetFilters replaces the filter toggles and persists the preference.
func (b *Browser) SetFilters(f Filters) {
	b.mu.Lock()
	b.query.Filters = f
	prefs := PreferencesOf(b.query)
	b.mu.Unlock()
	b.savePreferences(prefs)
}

// SetSortMode changes the sort order and persists the preference.
func (b *Browser) SetSortMode(mode SortMode) {
	b.mu.Lock()
	b.query.SortMode = mode
	prefs := PreferencesOf(b.query)
	b.mu.Unlock()
	b.savePreferences(prefs)
}

func (b *Browser) savePreferences(p Preferences) {
	if b.slots == nil {
		return
	}
	if err := SavePreferences(b.slots, p); err != nil {
		b.log.Warnw("Failed to save preferences", zap.Error(err))
	}
}

// Query returns a snapshot of the current query state.
func (b *Browser) Query() QueryState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.query
}

// Page returns the last fetched page.
func (b *Browser) Page() ResultPage {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.page
}

// Visible is the loaded page after client-side filtering and sorting.
func (b *Browser) Visible() []ScriptEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Apply(b.page.Entries, b.query)
}

// Loading reports whether any fetch is outstanding.
func (b *Browser) Loading() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.inflight > 0
}

// HasLoaded reports whether at least one fetch has settled.
func (b *Browser) HasLoaded() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hasLoaded
}

// ShowEmpty reports whether the "no results" state should render.
func (b *Browser) ShowEmpty() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hasLoaded && b.inflight == 0 && len(Apply(b.page.Entries, b.query)) == 0
}

// CanPrev reports whether the previous-page control is enabled.
func (b *Browser) CanPrev() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.canPrev()
}

// CanNext reports whether the next-page control is enabled.
func (b *Browser) CanNext() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.canNext()
}

func (b *Browser) canPrev() bool { return b.query.PageNumber > 1 }

func (b *Browser) canNext() bool { return b.query.PageNumber < b.page.TotalPages }

func (b *Browser) notify() Notifier {
	if b.notifier == nil {
		return nopNotifier{}
	}
	return b.notifier
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}
func (nopNotifier) Info(string)    {}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	return min(max(v, lo), hi)
}
