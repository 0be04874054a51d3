package scriptblox

import (
	"strings"
	"time"

	"scripthub/catalog"

	"go.uber.org/zap"
)

// listingResponse is the envelope shared by the fetch and search endpoints.
// Pointers let a missing result or scripts array be told apart from an empty one.
type listingResponse struct {
	Result *struct {
		Scripts    *[]Script `json:"scripts"`
		TotalPages int       `json:"totalPages"`
	} `json:"result"`
}

// Game is the game block of a script listing.
type Game struct {
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

// Script is a ScriptBlox script listing as sent on the wire.
type Script struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Game        Game   `json:"game"`
	Script      string `json:"script"`
	Views       int    `json:"views"`
	Verified    bool   `json:"verified"`
	Key         bool   `json:"key"`
	CreatedAt   string `json:"createdAt"`
	ScriptType  string `json:"scriptType"`
	IsUniversal *bool  `json:"isUniversal"`
	IsPatched   *bool  `json:"isPatched"`
}

func (s Script) toEntry(assetBase string, log *zap.SugaredLogger) catalog.ScriptEntry {
	createdAt, err := time.Parse(time.RFC3339Nano, s.CreatedAt)
	if err != nil && s.CreatedAt != "" {
		log.Warnw("Failed to parse script createdAt timestamp",
			zap.String("id", s.ID),
			zap.String("timestamp", s.CreatedAt),
			zap.Error(err),
		)
	}

	distribution := s.ScriptType
	if distribution == "" {
		distribution = "free"
	}

	views := s.Views
	if views < 0 {
		views = 0
	}

	return catalog.ScriptEntry{
		ID:    s.ID,
		Title: s.Title,
		Game: catalog.Game{
			Name:     s.Game.Name,
			ImageURL: ResolveImageURL(assetBase, s.Game.ImageURL),
		},
		Body:             s.Script,
		ViewCount:        views,
		Verified:         s.Verified,
		RequiresKey:      s.Key,
		CreatedAt:        createdAt,
		DistributionType: distribution,
		IsUniversal:      s.IsUniversal,
		IsPatched:        s.IsPatched,
	}
}

// ResolveImageURL prefixes site-relative image paths with the asset base.
func ResolveImageURL(assetBase, imageURL string) string {
	if imageURL == "" || !strings.HasPrefix(imageURL, "/") || assetBase == "" {
		return imageURL
	}
	return strings.TrimSuffix(assetBase, "/") + imageURL
}
