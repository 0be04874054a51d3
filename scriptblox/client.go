package scriptblox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"scripthub/catalog"
	"scripthub/config"

	"go.uber.org/zap"
)

// maxErrorBody caps how much of a failed response is kept for the error message.
const maxErrorBody = 512

// Client talks to the ScriptBlox listing and search endpoints.
type Client struct {
	ListingURL   string
	SearchURL    string
	AssetBaseURL string
	UserAgent    string
	HTTPClient   *http.Client
	log          *zap.SugaredLogger
}

// NewClient creates a new ScriptBlox client using the provided configuration.
func NewClient(cfg config.Config, log *zap.SugaredLogger) (*Client, error) {
	if cfg.ListingURL == "" || cfg.SearchURL == "" {
		return nil, fmt.Errorf("listing and search URLs must be configured")
	}
	if cfg.UserAgent == "" {
		// Should be handled by LoadConfig default, but double-check
		return nil, fmt.Errorf("USERAGENT is not configured")
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	return &Client{
		ListingURL:   cfg.ListingURL,
		SearchURL:    cfg.SearchURL,
		AssetBaseURL: cfg.AssetBaseURL,
		UserAgent:    cfg.UserAgent,
		HTTPClient: &http.Client{
			Timeout: cfg.RequestTimeout, // zero leaves the request unbounded
		},
		log: log,
	}, nil
}

// pageURL picks the listing endpoint for an empty query and the search endpoint otherwise.
func (c *Client) pageURL(searchText string, page int) (string, error) {
	base := c.ListingURL
	params := url.Values{}
	if searchText != "" {
		base = c.SearchURL
		params.Set("q", searchText)
	}
	params.Set("page", strconv.Itoa(page))

	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", base, err)
	}
	u.RawQuery = params.Encode()
	return u.String(), nil
}

func (c *Client) makeRequest(ctx context.Context, fullURL string, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

// FetchPage retrieves one page of the catalog, filtered server-side by searchText when it is non-empty.
func (c *Client) FetchPage(ctx context.Context, searchText string, page int) (catalog.ResultPage, error) {
	if page < 1 {
		page = 1
	}
	fullURL, err := c.pageURL(searchText, page)
	if err != nil {
		return catalog.ResultPage{}, err
	}

	c.log.Infow("Fetching catalog page", zap.String("url", fullURL))

	var resp listingResponse
	if err := c.makeRequest(ctx, fullURL, &resp); err != nil {
		return catalog.ResultPage{}, fmt.Errorf("failed to fetch page %d: %w", page, err)
	}
	if resp.Result == nil || resp.Result.Scripts == nil {
		return catalog.ResultPage{}, fmt.Errorf("failed to fetch page %d: %w: missing result.scripts", page, ErrMalformedResponse)
	}

	entries := make([]catalog.ScriptEntry, 0, len(*resp.Result.Scripts))
	for _, s := range *resp.Result.Scripts {
		entries = append(entries, s.toEntry(c.AssetBaseURL, c.log))
	}

	totalPages := resp.Result.TotalPages
	if totalPages < 1 {
		totalPages = 1
	}

	c.log.Infow("Fetched catalog page",
		zap.Int("page", page),
		zap.Int("entries", len(entries)),
		zap.Int("total_pages", totalPages),
	)
	return catalog.ResultPage{Entries: entries, TotalPages: totalPages}, nil
}
