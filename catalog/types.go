package catalog

import "time"

// Game is the game a script targets.
type Game struct {
	Name     string
	ImageURL string // empty when the listing has no image
}

// ScriptEntry is one catalog listing.
type ScriptEntry struct {
	ID               string
	Title            string
	Game             Game
	Body             string
	ViewCount        int
	Verified         bool
	RequiresKey      bool
	CreatedAt        time.Time
	DistributionType string
	IsUniversal      *bool // nil when the listing omits it
	IsPatched        *bool // nil when the listing omits it
}

// ResultPage is the last fetched response.
type ResultPage struct {
	Entries    []ScriptEntry
	TotalPages int
}

// Filters are the client-side filter toggles.
type Filters struct {
	Strict         bool `json:"strict"`
	VerifiedOnly   bool `json:"verifiedOnly"`
	KeylessOnly    bool `json:"keylessOnly"`
	UniversalOnly  bool `json:"universalOnly"`
	NotPatchedOnly bool `json:"notPatchedOnly"`
}

// SortMode orders the visible entries.
type SortMode string

const (
	SortRelevance  SortMode = "relevance"
	SortNewest     SortMode = "newest"
	SortMostViewed SortMode = "mostViewed"
)

// SortModes lists every mode in cycling order.
var SortModes = []SortMode{SortRelevance, SortNewest, SortMostViewed}

// ParseSortMode accepts the mode names plus the short aliases used on the command line.
func ParseSortMode(s string) (SortMode, bool) {
	switch s {
	case "", "relevance":
		return SortRelevance, true
	case "newest":
		return SortNewest, true
	case "mostViewed", "most-viewed", "views":
		return SortMostViewed, true
	default:
		return "", false
	}
}

// Next returns the mode after m, wrapping around.
func (m SortMode) Next() SortMode {
	for i, mode := range SortModes {
		if mode == m {
			return SortModes[(i+1)%len(SortModes)]
		}
	}
	return SortRelevance
}

// Label is the human-readable name of the mode.
func (m SortMode) Label() string {
	switch m {
	case SortNewest:
		return "Newest"
	case SortMostViewed:
		return "Most viewed"
	default:
		return "Relevance"
	}
}

// QueryState is the browser's current intent.
type QueryState struct {
	SearchText string
	PageNumber int
	Filters    Filters
	SortMode   SortMode
}

// DefaultQueryState is the state a freshly mounted browser starts from.
func DefaultQueryState() QueryState {
	return QueryState{PageNumber: 1, SortMode: SortRelevance}
}
