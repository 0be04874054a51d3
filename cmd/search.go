package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"scripthub/catalog"
	"scripthub/logger"
	"scripthub/ui"
)

// searchOptions are the flags of the search command.
type searchOptions struct {
	page       int
	strict     bool
	verified   bool
	keyless    bool
	universal  bool
	notPatched bool
	sort       string
	json       bool
}

var searchOpts searchOptions

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Print one page of the catalog",
	Long: `Fetch one page of ScriptBlox results and print it.
Without a query the latest listing is shown.

Example: scripthub search fly gui --verified --sort newest`,
	RunE: func(cmd *cobra.Command, args []string) error {
		query, err := searchOpts.queryState(strings.Join(args, " "))
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		_, _, client := bootstrap(configPath)
		return runSearch(ctx, client, query, searchOpts.json, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	f := searchCmd.Flags()
	f.IntVar(&searchOpts.page, "page", 1, "Page number to fetch")
	f.BoolVar(&searchOpts.strict, "strict", false, "Only keep results containing every query word in the title or game")
	f.BoolVar(&searchOpts.verified, "verified", false, "Only show verified scripts")
	f.BoolVar(&searchOpts.keyless, "keyless", false, "Only show scripts without a key system")
	f.BoolVar(&searchOpts.universal, "universal", false, "Only show universal scripts")
	f.BoolVar(&searchOpts.notPatched, "not-patched", false, "Hide scripts marked as patched")
	f.StringVar(&searchOpts.sort, "sort", string(catalog.SortRelevance), "Sort order: relevance, newest or views")
	f.BoolVar(&searchOpts.json, "json", false, "Print results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func (o searchOptions) queryState(text string) (catalog.QueryState, error) {
	mode, ok := catalog.ParseSortMode(o.sort)
	if !ok {
		return catalog.QueryState{}, fmt.Errorf("unknown sort mode %q", o.sort)
	}
	return catalog.QueryState{
		SearchText: strings.TrimSpace(text),
		PageNumber: max(o.page, 1),
		Filters: catalog.Filters{
			Strict:         o.strict,
			VerifiedOnly:   o.verified,
			KeylessOnly:    o.keyless,
			UniversalOnly:  o.universal,
			NotPatchedOnly: o.notPatched,
		},
		SortMode: mode,
	}, nil
}

func runSearch(ctx context.Context, fetcher catalog.Fetcher, q catalog.QueryState, asJSON bool, out, errOut io.Writer) error {
	log := logger.Log.With(zap.String("query", q.SearchText), zap.Int("page", q.PageNumber))
	notifier := consoleNotifier{w: errOut, log: log}

	page, err := fetcher.FetchPage(ctx, q.SearchText, q.PageNumber)
	if err != nil {
		log.Errorw("Search failed", zap.Error(err))
		notifier.Error("Failed to fetch scripts from ScriptBlox")
		return err
	}

	visible := catalog.Apply(page.Entries, q)
	log.Infow("Search finished", zap.Int("fetched", len(page.Entries)), zap.Int("visible", len(visible)))

	if asJSON {
		return writeSearchJSON(out, q, page, visible)
	}
	writeSearchTable(out, q, page, visible)
	return nil
}

type searchJSONEntry struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Game        string `json:"game"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Views       int    `json:"views"`
	Verified    bool   `json:"verified"`
	Key         bool   `json:"key"`
	CreatedAt   string `json:"createdAt,omitempty"`
	ScriptType  string `json:"scriptType"`
	IsUniversal *bool  `json:"isUniversal,omitempty"`
	IsPatched   *bool  `json:"isPatched,omitempty"`
	Script      string `json:"script"`
}

type searchJSONOutput struct {
	Query      string            `json:"query"`
	Page       int               `json:"page"`
	TotalPages int               `json:"totalPages"`
	Scripts    []searchJSONEntry `json:"scripts"`
}

func writeSearchJSON(w io.Writer, q catalog.QueryState, page catalog.ResultPage, visible []catalog.ScriptEntry) error {
	out := searchJSONOutput{
		Query:      q.SearchText,
		Page:       q.PageNumber,
		TotalPages: max(page.TotalPages, 1),
		Scripts:    make([]searchJSONEntry, 0, len(visible)),
	}
	for _, e := range visible {
		entry := searchJSONEntry{
			ID:          e.ID,
			Title:       e.Title,
			Game:        e.Game.Name,
			ImageURL:    e.Game.ImageURL,
			Views:       e.ViewCount,
			Verified:    e.Verified,
			Key:         e.RequiresKey,
			ScriptType:  e.DistributionType,
			IsUniversal: e.IsUniversal,
			IsPatched:   e.IsPatched,
			Script:      e.Body,
		}
		if !e.CreatedAt.IsZero() {
			entry.CreatedAt = e.CreatedAt.UTC().Format(time.RFC3339)
		}
		out.Scripts = append(out.Scripts, entry)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeSearchTable(w io.Writer, q catalog.QueryState, page catalog.ResultPage, visible []catalog.ScriptEntry) {
	if len(visible) == 0 {
		fmt.Fprintln(w, "No scripts found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TITLE\tGAME\tVIEWS\tCREATED\tFLAGS")
	for _, e := range visible {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			ui.Truncate(e.Title, 48),
			ui.Truncate(e.Game.Name, 28),
			ui.FormatViews(e.ViewCount),
			ui.FormatDate(e.CreatedAt),
			plainFlags(e),
		)
	}
	tw.Flush()

	if total := max(page.TotalPages, 1); total > 1 {
		fmt.Fprintf(w, "\nPage %d of %d\n", q.PageNumber, total)
	}
}

func plainFlags(e catalog.ScriptEntry) string {
	var flags []string
	if e.RequiresKey {
		flags = append(flags, "KEY")
	}
	if e.Verified {
		flags = append(flags, "verified")
	}
	if e.IsUniversal != nil && *e.IsUniversal {
		flags = append(flags, "universal")
	}
	if e.IsPatched != nil && *e.IsPatched {
		flags = append(flags, "patched")
	}
	return strings.Join(flags, ",")
}

