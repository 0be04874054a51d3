package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"scripthub/catalog"
	"scripthub/logger"
	"scripthub/ui"
)

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Open the interactive script browser",
	Long:  `Launch a TUI to search, filter and page through the ScriptBlox catalog.`,
	Run: func(cmd *cobra.Command, _ []string) {
		runBrowse(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

// fetchSettledMsg reports that a fetch started from the TUI has finished.
type fetchSettledMsg struct {
	err error
}

// BrowseModel represents the state of the TUI
type BrowseModel struct {
	ctx           context.Context
	browser       *catalog.Browser
	toaster       *ui.Toaster
	input         textinput.Model
	spinner       spinner.Model
	selectedIndex int
	width         int
	height        int
}

func newBrowseModel(ctx context.Context, browser *catalog.Browser, toaster *ui.Toaster) BrowseModel {
	ti := textinput.New()
	ti.Placeholder = "Search scripts..."
	ti.Prompt = "🔍 "
	ti.CharLimit = 120

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = ui.SpinnerStyle

	return BrowseModel{
		ctx:     ctx,
		browser: browser,
		toaster: toaster,
		input:   ti,
		spinner: s,
		width:   100,
		height:  30,
	}
}

// Init loads the first listing page.
func (m BrowseModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.fetchCmd(m.browser.Mount),
	)
}

func (m BrowseModel) fetchCmd(run func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return fetchSettledMsg{err: run(m.ctx)}
	}
}

// Update handles messages
func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.input.Focused() {
			return m.handleInputKey(msg)
		}
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case spinner.TickMsg:
		// Keep ticking so expiring toasts and the loading state redraw.
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case fetchSettledMsg:
		// Failures were already announced through the toaster.
		m.clampSelection()
	}
	return m, nil
}

func (m BrowseModel) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		m.input.Blur()
		m.selectedIndex = 0
		return m, m.fetchCmd(m.browser.Search)
	case "esc":
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.browser.SetSearchText(m.input.Value())
	m.clampSelection()
	return m, cmd
}

func (m BrowseModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "/":
		cmd := m.input.Focus()
		return m, cmd
	case "up", "k":
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
	case "down", "j":
		if m.selectedIndex < len(m.browser.Visible())-1 {
			m.selectedIndex++
		}
	case "enter", "r":
		m.selectedIndex = 0
		return m, m.fetchCmd(m.browser.Search)
	case "[", "left", "h":
		if !m.browser.CanPrev() {
			return m, nil
		}
		m.selectedIndex = 0
		return m, m.fetchCmd(func(ctx context.Context) error {
			_, err := m.browser.PrevPage(ctx)
			return err
		})
	case "]", "right", "l":
		if !m.browser.CanNext() {
			return m, nil
		}
		m.selectedIndex = 0
		return m, m.fetchCmd(func(ctx context.Context) error {
			_, err := m.browser.NextPage(ctx)
			return err
		})
	case "s", "v", "n", "u", "p":
		m.toggleFilter(msg.String())
		m.clampSelection()
	case "o":
		m.browser.SetSortMode(m.browser.Query().SortMode.Next())
	case "c":
		if entry, ok := m.selected(); ok {
			return m, func() tea.Msg {
				_ = m.browser.Copy(entry)
				return nil
			}
		}
	case "e":
		if entry, ok := m.selected(); ok {
			_ = m.browser.SendToEditor(entry)
		}
	}
	return m, nil
}

func (m *BrowseModel) toggleFilter(key string) {
	f := m.browser.Query().Filters
	switch key {
	case "s":
		f.Strict = !f.Strict
	case "v":
		f.VerifiedOnly = !f.VerifiedOnly
	case "n":
		f.KeylessOnly = !f.KeylessOnly
	case "u":
		f.UniversalOnly = !f.UniversalOnly
	case "p":
		f.NotPatchedOnly = !f.NotPatchedOnly
	}
	m.browser.SetFilters(f)
}

func (m BrowseModel) selected() (catalog.ScriptEntry, bool) {
	visible := m.browser.Visible()
	if m.selectedIndex < 0 || m.selectedIndex >= len(visible) {
		return catalog.ScriptEntry{}, false
	}
	return visible[m.selectedIndex], true
}

func (m *BrowseModel) clampSelection() {
	n := len(m.browser.Visible())
	if m.selectedIndex >= n {
		m.selectedIndex = n - 1
	}
	if m.selectedIndex < 0 {
		m.selectedIndex = 0
	}
}

// View renders the UI
func (m BrowseModel) View() string {
	var b strings.Builder
	q := m.browser.Query()

	b.WriteString(ui.TitleStyle.Render("Script Hub") + "  " + ui.MutedStyle.Render("Browse scripts from ScriptBlox") + "\n\n")
	b.WriteString(m.input.View() + "\n")
	b.WriteString(renderFilters(q) + "\n\n")

	switch {
	case m.browser.Loading():
		b.WriteString(fmt.Sprintf("%s Loading scripts...\n", m.spinner.View()))
	case m.browser.ShowEmpty():
		b.WriteString(ui.MutedStyle.Render("No scripts found") + "\n")
	default:
		b.WriteString(m.renderList())
	}

	if !m.browser.Loading() && m.browser.HasLoaded() {
		if pager := m.renderPager(q); pager != "" {
			b.WriteString("\n" + pager + "\n")
		}
	}

	if toast := m.toaster.View(); toast != "" {
		b.WriteString("\n" + toast + "\n")
	}
	b.WriteString("\n" + renderBrowseFooter(m.input.Focused()))
	return b.String()
}

func renderFilters(q catalog.QueryState) string {
	parts := []string{
		ui.Toggle("Strict (s)", q.Filters.Strict),
		ui.Toggle("Verified (v)", q.Filters.VerifiedOnly),
		ui.Toggle("Keyless (n)", q.Filters.KeylessOnly),
		ui.Toggle("Universal (u)", q.Filters.UniversalOnly),
		ui.Toggle("Not patched (p)", q.Filters.NotPatchedOnly),
		ui.MutedStyle.Render("Sort (o): ") + q.SortMode.Label(),
	}
	return strings.Join(parts, "  ")
}

func (m BrowseModel) listCapacity() int {
	// Header, input, filters, pager, toast and footer take roughly twelve lines.
	return max(3, m.height-12)
}

func (m BrowseModel) renderList() string {
	visible := m.browser.Visible()
	if len(visible) == 0 {
		return ""
	}

	capacity := m.listCapacity()
	start := 0
	if m.selectedIndex >= capacity {
		start = m.selectedIndex - capacity + 1
	}
	end := min(len(visible), start+capacity)

	var b strings.Builder
	b.WriteString(ui.TitleStyle.Render(fmt.Sprintf("  %-40s %-24s %8s %10s  %s", "Title", "Game", "Views", "Created", "Flags")) + "\n")
	for i := start; i < end; i++ {
		b.WriteString(renderEntryRow(visible[i], i == m.selectedIndex) + "\n")
	}
	return b.String()
}

func renderEntryRow(e catalog.ScriptEntry, selected bool) string {
	indicator := " "
	if selected {
		indicator = "›"
	}

	row := fmt.Sprintf("%s %-40s %-24s %8s %10s  %s",
		indicator,
		ui.Truncate(e.Title, 40),
		ui.Truncate(e.Game.Name, 24),
		ui.FormatViews(e.ViewCount),
		ui.FormatDate(e.CreatedAt),
		renderFlags(e),
	)
	if selected {
		return ui.SelectedStyle.Render(row)
	}
	return row
}

func renderFlags(e catalog.ScriptEntry) string {
	var flags []string
	if e.RequiresKey {
		flags = append(flags, ui.KeyBadge.Render("KEY"))
	}
	if e.Verified {
		flags = append(flags, ui.VerifiedBadge.Render("verified"))
	}
	if e.IsUniversal != nil && *e.IsUniversal {
		flags = append(flags, "universal")
	}
	if e.IsPatched != nil && *e.IsPatched {
		flags = append(flags, "patched")
	}
	if e.DistributionType != "" && e.DistributionType != "free" {
		flags = append(flags, e.DistributionType)
	}
	return strings.Join(flags, " ")
}

func (m BrowseModel) renderPager(q catalog.QueryState) string {
	total := m.browser.Page().TotalPages
	if total <= 1 {
		return ""
	}
	prev, next := "[ Previous", "Next ]"
	if !m.browser.CanPrev() {
		prev = ui.MutedStyle.Render(prev)
	}
	if !m.browser.CanNext() {
		next = ui.MutedStyle.Render(next)
	}
	return fmt.Sprintf("%s   Page %d of %d   %s", prev, q.PageNumber, total, next)
}

func renderBrowseFooter(searching bool) string {
	if searching {
		return ui.FooterStyle.Render("enter: search  esc: done typing  ctrl+c: quit")
	}
	return ui.FooterStyle.Render("/: search  ↑/k ↓/j: move  [ ]: page  c: copy  e: send to editor  r: refresh  q: quit")
}

func runBrowse(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	_, store, client := bootstrap(configPath)

	toaster := ui.NewToaster(logger.Log)
	browser := catalog.NewBrowser(catalog.Deps{
		Fetcher:   client,
		Notifier:  toaster,
		Clipboard: catalog.ClipboardFunc(clipboard.WriteAll),
		Slots:     store,
		Log:       logger.Log,
		Query:     catalog.LoadPreferences(store, logger.Log),
	})

	p := tea.NewProgram(newBrowseModel(ctx, browser, toaster), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Log.Fatalw("Failed to run browser", zap.Error(err))
	}
}
