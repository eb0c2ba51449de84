package pager

import (
	"fmt"
	"strconv"
	"strings"

	"tavu/internal/menu"
)

// Item is the read-model contract list screens consume: one line for menu
// rows, a multi-line block for detail views.
type Item interface {
	DisplayShort() string
	DisplayVerbose() string
}

// Kind tags the outcome of one render/interpret cycle.
type Kind int

const (
	// NoAction resumes the same page (detail view closed, stale pick, header row).
	NoAction Kind = iota
	// PreviousPage moves one page back.
	PreviousPage
	// NextPage moves one page forward.
	NextPage
	// GoBack leaves the list screen.
	GoBack
	// ItemSelected carries a selected item, or a callback outcome out of Browse.
	ItemSelected
	// FilterChanged reports that the operator hit the filter toggle.
	FilterChanged
)

// Action is the sole channel a list interaction communicates through.
type Action struct {
	Kind   Kind
	Page   int    // target page for page moves, resume page for NoAction
	Item   Item   // selected item for ItemSelected
	Filter string // active filter token for FilterChanged
	Value  any    // callback-supplied payload handed out of Browse
}

// Section names one contiguous run of a sectioned list. The sizes of all
// sections sum to the item count; membership is fixed by position alone.
type Section struct {
	Name string
	Size int
}

// NamedItems binds a section name to its ordered items, for NewSectioned.
type NamedItems struct {
	Name  string
	Items []Item
}

// DefaultPageSize matches the ten-row pages of the original screens.
const DefaultPageSize = 10

// List holds one pageable snapshot of items plus page bookkeeping. Lists are
// created fresh on screen entry and discarded on navigation; they are never
// shared or persisted.
type List struct {
	items    []Item
	sections []Section
	pageSize int
	page     int
}

// New builds an unsectioned list over items.
func New(items []Item, pageSize int) *List {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &List{items: items, pageSize: pageSize}
}

// NewSectioned builds a list partitioned into the given sections, flattened
// in order. Empty sections are kept so cumulative offsets stay correct.
func NewSectioned(pageSize int, sections ...NamedItems) *List {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	l := &List{pageSize: pageSize}
	for _, s := range sections {
		l.items = append(l.items, s.Items...)
		l.sections = append(l.sections, Section{Name: s.Name, Size: len(s.Items)})
	}
	return l
}

// Items returns the snapshot backing the list.
func (l *List) Items() []Item { return l.items }

// Len returns the item count.
func (l *List) Len() int { return len(l.items) }

// Page returns the zero-based current page.
func (l *List) Page() int { return l.page }

// PageSize returns the configured page size.
func (l *List) PageSize() int { return l.pageSize }

// TotalPages returns the zero-based index of the last page: floor((N-1)/P)
// for non-empty lists, 0 otherwise.
func (l *List) TotalPages() int {
	if len(l.items) == 0 {
		return 0
	}
	return (len(l.items) - 1) / l.pageSize
}

// SetPage clamps page into [0, TotalPages] and makes it current. Out-of-range
// requests are caller defects; clamping here keeps the render in bounds
// without wrapping.
func (l *List) SetPage(page int) {
	if page < 0 {
		page = 0
	}
	if max := l.TotalPages(); page > max {
		page = max
	}
	l.page = page
}

// VisibleRange returns the half-open global index range of the current page.
func (l *List) VisibleRange() (start, end int) {
	start = l.page * l.pageSize
	end = start + l.pageSize
	if end > len(l.items) {
		end = len(l.items)
	}
	if start > end {
		start = end
	}
	return start, end
}

// sectionStarts maps the global index of each non-empty section's first item
// to that section's index.
func (l *List) sectionStarts() map[int]int {
	starts := make(map[int]int, len(l.sections))
	offset := 0
	for i, s := range l.sections {
		if s.Size > 0 {
			starts[offset] = i
		}
		offset += s.Size
	}
	return starts
}

// Update replaces the snapshot and resets to the first page. Used when a
// filter change refetches or refilters the backing data.
type Update struct {
	Items    []Item
	Sections []NamedItems // nil keeps the list unsectioned
	Filter   string
}

// Request configures one list screen interaction.
type Request struct {
	// Title names the resource kind, e.g. "Replicas".
	Title string
	// Filter is the token shown in the filter toggle entry.
	Filter string
	// ShowFilterToggle adds the "Current filter: X" entry.
	ShowFilterToggle bool
	// OnSelect maps a picked item to an outcome. Nil shows the item's verbose
	// details and waits for an acknowledgement instead.
	OnSelect func(Item) Action
	// OnFilter lets the owner swap the snapshot when the toggle is picked.
	// Returning ok=false keeps the current view. Nil makes the toggle inert.
	OnFilter func(current string) (Update, bool)
}

const (
	prevLabel = "← Previous Page"
	nextLabel = "→ Next Page"
	backLabel = "← Go Back"
)

func filterLabel(filter string) string {
	return "Current filter: " + filter
}

func headerLabel(name string) string {
	return fmt.Sprintf("--- %s ---", name)
}

func isHeaderLabel(label string) bool {
	return strings.HasPrefix(label, "--- ") && strings.HasSuffix(label, " ---")
}

// Choices builds the ordered label list for the current page. Item rows carry
// their global 1-based index; section headers are injected before the first
// row of each section present on the page and never consume an index.
func (l *List) Choices(req Request) []string {
	if len(l.items) == 0 {
		choices := make([]string, 0, 2)
		if req.ShowFilterToggle {
			choices = append(choices, filterLabel(req.Filter))
		}
		return append(choices, backLabel)
	}

	start, end := l.VisibleRange()
	choices := make([]string, 0, end-start+4)

	if req.ShowFilterToggle {
		choices = append(choices, filterLabel(req.Filter))
	}
	if l.page > 0 {
		choices = append(choices, prevLabel)
	}

	// Headers appear only for genuinely partitioned lists; a single section
	// would repeat the screen title as noise. A header marks where its section
	// begins, so a page starting mid-section carries no header for it.
	withHeaders := len(l.sections) > 1
	sectionStarts := l.sectionStarts()
	for idx := start; idx < end; idx++ {
		if withHeaders {
			if section, ok := sectionStarts[idx]; ok {
				choices = append(choices, headerLabel(l.sections[section].Name))
			}
		}
		choices = append(choices, fmt.Sprintf("%d. %s", idx+1, l.items[idx].DisplayShort()))
	}

	if l.page < l.TotalPages() {
		choices = append(choices, nextLabel)
	}
	return append(choices, backLabel)
}

// Interpret translates a raw menu answer into an Action. Unparseable or
// out-of-range numeric picks resolve to NoAction on the current page; they
// are never surfaced as errors.
func (l *List) Interpret(raw string, req Request) Action {
	if req.ShowFilterToggle && raw == filterLabel(req.Filter) {
		return Action{Kind: FilterChanged, Filter: req.Filter}
	}
	switch raw {
	case prevLabel:
		return Action{Kind: PreviousPage, Page: l.page - 1}
	case nextLabel:
		return Action{Kind: NextPage, Page: l.page + 1}
	case backLabel:
		return Action{Kind: GoBack}
	}
	if isHeaderLabel(raw) {
		return Action{Kind: NoAction, Page: l.page}
	}

	number, _, ok := strings.Cut(raw, ".")
	if !ok {
		return Action{Kind: NoAction, Page: l.page}
	}
	idx, err := strconv.Atoi(strings.TrimSpace(number))
	if err != nil || idx < 1 || idx > len(l.items) {
		return Action{Kind: NoAction, Page: l.page}
	}
	return Action{Kind: ItemSelected, Item: l.items[idx-1], Page: l.page}
}

// Show runs one render/interpret cycle. A cancelled menu resolves to GoBack;
// an item pick runs OnSelect or falls back to the detail view.
func (l *List) Show(ui menu.UI, req Request) Action {
	if len(l.items) == 0 {
		return l.showEmpty(ui, req)
	}

	noun := strings.ToLower(req.Title)
	count := fmt.Sprintf("%d %s", len(l.items), noun)
	if req.Filter != "" {
		count = fmt.Sprintf("%d %s %s", len(l.items), req.Filter, noun)
	}
	ui.Say(fmt.Sprintf("Page %d of %d (%s)", l.page+1, l.TotalPages()+1, count))

	raw, err := ui.Select(fmt.Sprintf("Select a %s to view details or navigate:", singular(noun)), l.Choices(req))
	if err != nil {
		// Cancellation and prompt failures both resolve to go-back; a list
		// screen must never dead-end the session.
		return Action{Kind: GoBack}
	}

	action := l.Interpret(raw, req)
	if action.Kind != ItemSelected {
		return action
	}
	if req.OnSelect != nil {
		out := req.OnSelect(action.Item)
		if out.Kind == NoAction {
			out.Page = l.page
		}
		return out
	}
	ui.Say(action.Item.DisplayVerbose())
	ui.Ack("")
	return Action{Kind: NoAction, Page: l.page}
}

func (l *List) showEmpty(ui menu.UI, req Request) Action {
	noun := strings.ToLower(req.Title)
	if req.Filter != "" {
		ui.Say(fmt.Sprintf("No %s %s found.", req.Filter, noun))
	} else {
		ui.Say(fmt.Sprintf("No %s found.", noun))
	}

	raw, err := ui.Select(fmt.Sprintf("No %s found. What would you like to do?", noun), l.Choices(req))
	if err != nil {
		return Action{Kind: GoBack}
	}
	return l.Interpret(raw, req)
}

// Browse loops Show until the interaction produces an outward result: GoBack,
// or an OnSelect outcome other than NoAction. Page moves re-render in place;
// filter changes hand control to OnFilter and restart from the first page.
func (l *List) Browse(ui menu.UI, req Request) Action {
	for {
		l.SetPage(l.page)
		action := l.Show(ui, req)
		switch action.Kind {
		case PreviousPage, NextPage, NoAction:
			l.SetPage(action.Page)
		case FilterChanged:
			if req.OnFilter == nil {
				continue
			}
			update, ok := req.OnFilter(req.Filter)
			if !ok {
				continue
			}
			if update.Sections != nil {
				fresh := NewSectioned(l.pageSize, update.Sections...)
				l.items, l.sections = fresh.items, fresh.sections
			} else {
				l.items, l.sections = update.Items, nil
			}
			req.Filter = update.Filter
			l.page = 0
		default:
			return action
		}
	}
}

// ItemsOf adapts a typed slice to the Item interface.
func ItemsOf[T Item](values []T) []Item {
	items := make([]Item, len(values))
	for i, v := range values {
		items[i] = v
	}
	return items
}

// singular trims a plural resource noun for prompts ("replicas" → "replica").
func singular(noun string) string {
	return strings.TrimSuffix(noun, "s")
}
