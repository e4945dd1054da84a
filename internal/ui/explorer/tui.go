package explorer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/moltstreet/mstctl/internal/explore"
	"github.com/moltstreet/mstctl/internal/ui/styles"
)

const (
	maxAutoColWidth = 28
	minColWidth     = 3
	markerColWidth  = 2

	pageSizeStep = 5
	minPageSize  = 5
	maxPageSize  = 100
)

// Screen mode
type screenMode int

const (
	modeNormal screenMode = iota
	modeSearch
	modeReason // collecting a rejection reason
)

// Exit mode — what to print after quitting the TUI
type exitMode int

const (
	exitNormal exitMode = iota
	exitJSON
	exitPlain
)

// Commands selects which row commands a screen offers.
type Commands struct {
	Cancel  bool
	Approve bool
	Reject  bool
	Delete  bool
}

// Options configures one interactive screen.
type Options[E explore.Entity] struct {
	Title      string
	Schema     explore.Schema
	Fetch      explore.FetchFunc[E]
	Dispatcher *explore.Dispatcher // nil for read-only screens
	Commands   Commands
	Timeout    time.Duration
}

// ═══════════════════════════════════════════════════════════════════════════
// Messages
// ═══════════════════════════════════════════════════════════════════════════

type fetchedMsg[E explore.Entity] struct {
	tok  explore.Token
	rows []E
	err  error
}

type commandDoneMsg struct {
	kind  explore.CommandKind
	rowID string
	err   error
}

type statusClearMsg struct{}

const statusDuration = 2 * time.Second

// ═══════════════════════════════════════════════════════════════════════════
// Key Bindings
// ═══════════════════════════════════════════════════════════════════════════

type screenKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	PrevPage    key.Binding
	NextPage    key.Binding
	FirstPage   key.Binding
	LastPage    key.Binding
	Grow        key.Binding
	Shrink      key.Binding
	Search      key.Binding
	Clear       key.Binding
	SortNext    key.Binding
	SortFlip    key.Binding
	Refresh     key.Binding
	YankID      key.Binding
	YankRow     key.Binding
	Cancel      key.Binding
	Approve     key.Binding
	Reject      key.Binding
	Delete      key.Binding
	ExportJSON  key.Binding
	ExportPlain key.Binding
	Quit        key.Binding
}

var screenKeys = screenKeyMap{
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	PrevPage:    key.NewBinding(key.WithKeys("left", "h", "pgup"), key.WithHelp("←", "prev page")),
	NextPage:    key.NewBinding(key.WithKeys("right", "l", "pgdown"), key.WithHelp("→", "next page")),
	FirstPage:   key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first page")),
	LastPage:    key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last page")),
	Grow:        key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "bigger pages")),
	Shrink:      key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "smaller pages")),
	Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Clear:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear filters")),
	SortNext:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "next sort column")),
	SortFlip:    key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "flip sort")),
	Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	YankID:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy id")),
	YankRow:     key.NewBinding(key.WithKeys("Y"), key.WithHelp("Y", "copy row")),
	Cancel:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cancel order")),
	Approve:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "approve")),
	Reject:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "reject")),
	Delete:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	ExportJSON:  key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "print as JSON")),
	ExportPlain: key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "print table")),
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ═══════════════════════════════════════════════════════════════════════════
// Model
// ═══════════════════════════════════════════════════════════════════════════

type screenModel[E explore.Entity] struct {
	title      string
	x          *explore.Explorer[E]
	fetcher    *explore.Fetcher[E]
	dispatcher *explore.Dispatcher
	commands   Commands
	timeout    time.Duration

	cursor int // selected row within the visible page
	width  int
	height int
	ready  bool

	mode         screenMode
	searchInput  textinput.Model
	reasonInput  textinput.Model
	reasonRow    string // row awaiting a rejection reason
	reasonStatus string

	statusMsg   string
	statusErr   bool
	statusUntil time.Time

	exitMode exitMode
}

func newScreenModel[E explore.Entity](opts Options[E]) screenModel[E] {
	si := textinput.New()
	si.Placeholder = "search..."
	si.CharLimit = 100
	si.Width = 30

	ri := textinput.New()
	ri.Placeholder = "reason..."
	ri.CharLimit = 200
	ri.Width = 50

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return screenModel[E]{
		title:       opts.Title,
		x:           explore.New[E](opts.Schema),
		fetcher:     explore.NewFetcher(opts.Fetch),
		dispatcher:  opts.Dispatcher,
		commands:    opts.Commands,
		timeout:     timeout,
		searchInput: si,
		reasonInput: ri,
	}
}

// Run launches an interactive screen and blocks until the user quits. If the
// user requested an export (J/P), the refined collection is printed to stdout
// after the TUI exits.
func Run[E explore.Entity](opts Options[E]) error {
	m := newScreenModel(opts)

	p := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if fm, ok := finalModel.(screenModel[E]); ok {
		switch fm.exitMode {
		case exitJSON:
			return PrintJSON(fm.x.Schema(), fm.x.Filtered())
		case exitPlain:
			PrintPlain(fm.x.Schema(), fm.x.Filtered())
		}
	}

	return nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Bubble Tea Interface
// ═══════════════════════════════════════════════════════════════════════════

func (m screenModel[E]) Init() tea.Cmd {
	return m.beginFetch()
}

func (m screenModel[E]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case fetchedMsg[E]:
		if m.fetcher.Settle(msg.tok, msg.rows, msg.err) {
			m.x.SetRows(m.fetcher.Rows())
			m.clampCursor()
		}
		return m, nil

	case commandDoneMsg:
		m.dispatcher.Finish(msg.kind, msg.rowID, msg.err)
		if msg.err != nil {
			return m, m.setStatus(fmt.Sprintf("%s failed: %s", msg.kind, msg.err), true)
		}
		// Success means the server state changed: re-fetch instead of
		// patching the local collection.
		return m, tea.Batch(
			m.setStatus(fmt.Sprintf("%s %s", msg.kind, styles.SymbolSuccess), false),
			m.beginFetch(),
		)

	case statusClearMsg:
		if !m.statusUntil.IsZero() && time.Now().After(m.statusUntil) {
			m.statusMsg = ""
			m.statusUntil = time.Time{}
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeReason:
			return m.updateReason(msg)
		}
		return m.updateNormal(msg)
	}

	return m, nil
}

func (m screenModel[E]) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, screenKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, screenKeys.Search):
		m.mode = modeSearch
		m.searchInput.SetValue(m.x.Search())
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, screenKeys.Clear):
		m.x.ClearFilters()
		m.searchInput.SetValue("")
		m.cursor = 0

	case key.Matches(msg, screenKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, screenKeys.Down):
		if m.cursor < len(m.x.View().Rows)-1 {
			m.cursor++
		}

	case key.Matches(msg, screenKeys.PrevPage):
		m.x.SetPage(m.x.Page().Number - 1)
		m.clampCursor()

	case key.Matches(msg, screenKeys.NextPage):
		m.x.SetPage(m.x.Page().Number + 1)
		m.clampCursor()

	case key.Matches(msg, screenKeys.FirstPage):
		m.x.SetPage(1)
		m.cursor = 0

	case key.Matches(msg, screenKeys.LastPage):
		m.x.SetPage(m.x.View().TotalPages)
		m.clampCursor()

	case key.Matches(msg, screenKeys.Grow):
		size := m.x.Page().Size + pageSizeStep
		if size > maxPageSize {
			size = maxPageSize
		}
		m.x.SetPageSize(size)
		m.cursor = 0

	case key.Matches(msg, screenKeys.Shrink):
		size := m.x.Page().Size - pageSizeStep
		if size < minPageSize {
			size = minPageSize
		}
		m.x.SetPageSize(size)
		m.cursor = 0

	case key.Matches(msg, screenKeys.SortNext):
		m.cycleSortColumn()

	case key.Matches(msg, screenKeys.SortFlip):
		s := m.x.Sort()
		if s.Key != "" {
			m.x.SetSort(s.Key, s.Direction.Toggle())
		}

	case key.Matches(msg, screenKeys.Refresh):
		return m, m.beginFetch()

	case key.Matches(msg, screenKeys.YankID):
		return m, m.yankID()

	case key.Matches(msg, screenKeys.YankRow):
		return m, m.yankRow()

	case key.Matches(msg, screenKeys.Cancel):
		if m.commands.Cancel {
			return m, m.issueCommand(explore.CancelOrder)
		}

	case key.Matches(msg, screenKeys.Approve):
		if m.commands.Approve {
			return m, m.issueCommand(explore.ApproveAction)
		}

	case key.Matches(msg, screenKeys.Reject):
		if m.commands.Reject {
			return m, m.promptReason()
		}

	case key.Matches(msg, screenKeys.Delete):
		if m.commands.Delete {
			return m, m.issueCommand(explore.DeleteAction)
		}

	case key.Matches(msg, screenKeys.ExportJSON):
		m.exitMode = exitJSON
		return m, tea.Quit

	case key.Matches(msg, screenKeys.ExportPlain):
		m.exitMode = exitPlain
		return m, tea.Quit

	default:
		// Digit keys cycle the matching facet through its options.
		s := msg.String()
		if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			m.cycleFacet(int(s[0] - '1'))
		}
	}

	return m, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Search & reason prompts
// ═══════════════════════════════════════════════════════════════════════════

func (m screenModel[E]) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeNormal
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.x.SetSearch("")
		m.cursor = 0
		return m, nil
	case tea.KeyEnter:
		m.mode = modeNormal
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	// Live filter as the user types
	m.x.SetSearch(m.searchInput.Value())
	m.cursor = 0

	return m, cmd
}

func (m screenModel[E]) updateReason(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeNormal
		m.reasonInput.Blur()
		m.reasonInput.SetValue("")
		m.reasonRow = ""
		return m, nil
	case tea.KeyEnter:
		reason := strings.TrimSpace(m.reasonInput.Value())
		rowID, status := m.reasonRow, m.reasonStatus
		m.mode = modeNormal
		m.reasonInput.Blur()
		m.reasonInput.SetValue("")
		m.reasonRow = ""
		if reason == "" {
			return m, m.setStatus("rejection needs a reason", true)
		}
		return m, m.dispatch(explore.RejectAction, rowID, status, reason)
	}

	var cmd tea.Cmd
	m.reasonInput, cmd = m.reasonInput.Update(msg)
	return m, cmd
}

// promptReason switches into reason-collection mode for the selected row. The
// same pre-flight checks run here as in issueCommand so a busy or ineligible
// row is refused before the prompt opens.
func (m *screenModel[E]) promptReason() tea.Cmd {
	row, ok := m.selectedRow()
	if !ok {
		return nil
	}
	rowID := row.EntityID()
	status := row.Field("status").Display()
	if m.dispatcher.Busy(rowID) {
		return m.setStatus("command already in flight for this row", true)
	}
	if !m.dispatcher.Allowed(explore.RejectAction, status) {
		return m.setStatus(fmt.Sprintf("cannot reject from status %q", status), true)
	}
	m.mode = modeReason
	m.reasonRow = rowID
	m.reasonStatus = status
	m.reasonInput.Focus()
	return textinput.Blink
}

// ═══════════════════════════════════════════════════════════════════════════
// Commands
// ═══════════════════════════════════════════════════════════════════════════

func (m *screenModel[E]) issueCommand(kind explore.CommandKind) tea.Cmd {
	row, ok := m.selectedRow()
	if !ok {
		return nil
	}
	return m.dispatch(kind, row.EntityID(), row.Field("status").Display(), "")
}

func (m *screenModel[E]) dispatch(kind explore.CommandKind, rowID, status, payload string) tea.Cmd {
	if err := m.dispatcher.Begin(kind, rowID, status); err != nil {
		return m.setStatus(err.Error(), true)
	}
	timeout := m.timeout
	d := m.dispatcher
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := d.Run(ctx, kind, rowID, payload)
		return commandDoneMsg{kind: kind, rowID: rowID, err: err}
	}
}

func (m *screenModel[E]) beginFetch() tea.Cmd {
	tok := m.fetcher.Begin()
	timeout := m.timeout
	f := m.fetcher
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		rows, err := f.Run(ctx)
		return fetchedMsg[E]{tok: tok, rows: rows, err: err}
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Facets & sorting
// ═══════════════════════════════════════════════════════════════════════════

// cycleFacet advances the idx-th facet through none → first option → ... →
// last option → none.
func (m *screenModel[E]) cycleFacet(idx int) {
	facets := m.x.Schema().Facets
	if idx >= len(facets) {
		return
	}
	f := facets[idx]

	current, active := m.x.FacetValue(f.Key)
	next := ""
	if !active {
		if len(f.Options) > 0 {
			next = f.Options[0].Value
		}
	} else {
		for i, opt := range f.Options {
			if opt.Value == current && i+1 < len(f.Options) {
				next = f.Options[i+1].Value
				break
			}
		}
	}

	m.x.SetFacet(f.Key, next)
	m.cursor = 0
}

func (m *screenModel[E]) cycleSortColumn() {
	keys := m.x.Schema().SortableKeys()
	if len(keys) == 0 {
		return
	}
	current := m.x.Sort().Key
	next := keys[0]
	for i, k := range keys {
		if k == current && i+1 < len(keys) {
			next = keys[i+1]
			break
		}
	}
	m.x.SetSort(next, explore.Ascending)
}

// ═══════════════════════════════════════════════════════════════════════════
// Helpers
// ═══════════════════════════════════════════════════════════════════════════

func (m screenModel[E]) selectedRow() (E, bool) {
	rows := m.x.View().Rows
	if m.cursor < 0 || m.cursor >= len(rows) {
		var zero E
		return zero, false
	}
	return rows[m.cursor], true
}

func (m *screenModel[E]) clampCursor() {
	n := len(m.x.View().Rows)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *screenModel[E]) setStatus(msg string, isErr bool) tea.Cmd {
	m.statusMsg = msg
	m.statusErr = isErr
	m.statusUntil = time.Now().Add(statusDuration)
	return tea.Tick(statusDuration, func(t time.Time) tea.Msg {
		return statusClearMsg{}
	})
}

// yankID copies the selected row's id to the system clipboard.
func (m *screenModel[E]) yankID() tea.Cmd {
	row, ok := m.selectedRow()
	if !ok {
		return nil
	}
	id := row.EntityID()
	if err := clipboard.WriteAll(id); err != nil {
		return m.setStatus(fmt.Sprintf("clipboard error: %s", err), true)
	}
	return m.setStatus(fmt.Sprintf("Copied: %s", id), false)
}

// yankRow copies the selected row (tab-separated cells) to the clipboard.
func (m *screenModel[E]) yankRow() tea.Cmd {
	row, ok := m.selectedRow()
	if !ok {
		return nil
	}
	cols := m.x.Schema().Columns
	cells := make([]string, len(cols))
	for i, c := range cols {
		cells[i] = c.CellText(row)
	}
	if err := clipboard.WriteAll(strings.Join(cells, "\t")); err != nil {
		return m.setStatus(fmt.Sprintf("clipboard error: %s", err), true)
	}
	return m.setStatus(fmt.Sprintf("Copied row (%d columns)", len(cells)), false)
}

func (m screenModel[E]) colWidths(view explore.View[E]) []int {
	cols := m.x.Schema().Columns
	widths := make([]int, len(cols))
	for i, c := range cols {
		if c.Width > 0 {
			widths[i] = c.Width
			continue
		}
		w := len(c.Title)
		for _, row := range view.Rows {
			if n := len(c.CellText(row)); n > w {
				w = n
			}
		}
		if w > maxAutoColWidth {
			w = maxAutoColWidth
		}
		if w < minColWidth {
			w = minColWidth
		}
		widths[i] = w
	}
	return widths
}

// ═══════════════════════════════════════════════════════════════════════════
// View
// ═══════════════════════════════════════════════════════════════════════════

func (m screenModel[E]) View() string {
	if !m.ready {
		return "Loading..."
	}

	view := m.x.View()
	var sb strings.Builder

	// Header: title, counts, active refinements
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.Accent)
	raw := len(m.x.Rows())
	if view.TotalItems != raw {
		sb.WriteString(headerStyle.Render(fmt.Sprintf("%s: %d/%d items", m.title, view.TotalItems, raw)))
	} else {
		sb.WriteString(headerStyle.Render(fmt.Sprintf("%s: %d items", m.title, raw)))
	}
	if m.fetcher.Loading() {
		sb.WriteString(styles.MutedMsg("  fetching..."))
	}
	sb.WriteString("\n")

	sb.WriteString(m.renderRefinements())
	sb.WriteString("\n")

	// Search / reason input line
	switch m.mode {
	case modeSearch:
		sb.WriteString(fmt.Sprintf("/%s\n", m.searchInput.View()))
	case modeReason:
		sb.WriteString(fmt.Sprintf("reject reason: %s\n", m.reasonInput.View()))
	default:
		if m.x.Search() != "" {
			sb.WriteString(styles.MutedMsg(fmt.Sprintf("filter: %s\n", m.x.Search())))
		} else {
			sb.WriteString("\n")
		}
	}

	if errMsg := m.fetcher.Err(); errMsg != "" {
		sb.WriteString(styles.ErrorMsg(errMsg))
		sb.WriteString("\n")
	}

	sb.WriteString(m.renderTable(view))

	// Footer: page info, flash message, help
	sb.WriteString("\n")
	sb.WriteString(styles.MutedMsg(fmt.Sprintf("page %d/%d · %d per page", view.PageNumber, view.TotalPages, view.PageSize)))
	sb.WriteString("\n")

	if m.statusMsg != "" && time.Now().Before(m.statusUntil) {
		if m.statusErr {
			sb.WriteString(styles.ErrorText(m.statusMsg))
		} else {
			sb.WriteString(styles.SuccessMsg(m.statusMsg))
		}
	} else if failure := m.selectedFailure(); failure != "" {
		sb.WriteString(styles.ErrorText(failure))
	} else {
		sb.WriteString(styles.MutedMsg(m.helpText()))
	}

	return sb.String()
}

func (m screenModel[E]) renderRefinements() string {
	var parts []string

	for i, f := range m.x.Schema().Facets {
		if v, ok := m.x.FacetValue(f.Key); ok {
			parts = append(parts, fmt.Sprintf("[%d] %s: %s", i+1, f.Title, f.OptionLabel(v)))
		} else {
			parts = append(parts, styles.Mute(fmt.Sprintf("[%d] %s: all", i+1, f.Title)))
		}
	}

	s := m.x.Sort()
	if s.Key != "" {
		arrow := styles.SymbolSortAsc
		if s.Direction == explore.Descending {
			arrow = styles.SymbolSortDsc
		}
		if col, ok := m.x.Schema().Column(s.Key); ok {
			parts = append(parts, fmt.Sprintf("sort: %s %s", col.Title, arrow))
		}
	}

	return strings.Join(parts, "  ")
}

func (m screenModel[E]) renderTable(view explore.View[E]) string {
	cols := m.x.Schema().Columns
	if len(cols) == 0 {
		return "No columns"
	}

	widths := m.colWidths(view)
	sortKey := m.x.Sort().Key

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.Info)
	sortedHeaderStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.Accent)
	separatorStyle := lipgloss.NewStyle().Foreground(styles.Muted)

	var sb strings.Builder

	sb.WriteString(strings.Repeat(" ", markerColWidth))
	for i, c := range cols {
		title := PadOrTruncate(c.Title, widths[i])
		if c.Key == sortKey {
			sb.WriteString(sortedHeaderStyle.Render(title))
		} else {
			sb.WriteString(headerStyle.Render(title))
		}
		sb.WriteString("  ")
	}
	sb.WriteString("\n")

	sb.WriteString(strings.Repeat(" ", markerColWidth))
	for i := range cols {
		sb.WriteString(separatorStyle.Render(strings.Repeat("─", widths[i])))
		sb.WriteString("  ")
	}
	sb.WriteString("\n")

	if len(view.Rows) == 0 {
		sb.WriteString(styles.MutedMsg("  (no matching rows)"))
		sb.WriteString("\n")
		return sb.String()
	}

	for idx, row := range view.Rows {
		sb.WriteString(m.renderRow(row, idx == m.cursor, widths))
		sb.WriteString("\n")
	}

	return sb.String()
}

func (m screenModel[E]) renderRow(row E, selected bool, widths []int) string {
	var sb strings.Builder

	marker := strings.Repeat(" ", markerColWidth)
	busy := false
	failed := false
	if m.dispatcher != nil {
		switch m.dispatcher.State(row.EntityID()) {
		case explore.RowPending:
			busy = true
			marker = styles.Yellow(styles.SymbolBusy) + " "
		case explore.RowFailed:
			failed = true
			marker = styles.Red(styles.SymbolError) + " "
		}
	}
	sb.WriteString(marker)

	cols := m.x.Schema().Columns
	for i, c := range cols {
		cell := PadOrTruncate(c.CellText(row), widths[i])
		switch {
		case selected:
			sb.WriteString(styles.SelectedStyle.Render(cell))
		case busy:
			sb.WriteString(styles.Mute(cell))
		case failed:
			sb.WriteString(styles.ErrorText(cell))
		default:
			sb.WriteString(cell)
		}
		sb.WriteString("  ")
	}

	return sb.String()
}

func (m screenModel[E]) selectedFailure() string {
	if m.dispatcher == nil {
		return ""
	}
	row, ok := m.selectedRow()
	if !ok {
		return ""
	}
	return m.dispatcher.FailureMessage(row.EntityID())
}

func (m screenModel[E]) helpText() string {
	parts := []string{"↑↓ row", "←→ page", "/ search", "1-9 facet", "s/S sort", "r refresh", "y copy"}
	if m.commands.Cancel {
		parts = append(parts, "c cancel")
	}
	if m.commands.Approve {
		parts = append(parts, "a approve")
	}
	if m.commands.Reject {
		parts = append(parts, "x reject")
	}
	if m.commands.Delete {
		parts = append(parts, "d delete")
	}
	parts = append(parts, "J json", "P table", "q quit")
	return strings.Join(parts, "  ")
}
