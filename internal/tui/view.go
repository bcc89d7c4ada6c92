package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/stahnma/gh-search/internal/format"
	"github.com/stahnma/gh-search/internal/github"
	"github.com/stahnma/gh-search/internal/search"
)

// linesPerRepo is the height of one rendered result.
const linesPerRepo = 3

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("GitHub Repository Search"))
	b.WriteString("\n\n")
	for i := range m.inputs {
		label := styleLabel
		if i == m.focus {
			label = styleFocused
		}
		b.WriteString(label.Render(fieldLabels[i]))
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString(m.filtersView())
	b.WriteString("\n\n")

	b.WriteString(m.bodyView())

	if pages := m.paginationView(); pages != "" {
		b.WriteString("\n\n")
		b.WriteString(pages)
	}
	if m.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(styleError.Render(m.notice))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	return b.String()
}

func (m Model) filtersView() string {
	f := m.state.Filters
	return styleDim.Render(fmt.Sprintf("Sort: %s · Order: %s · Per page: %d",
		f.Sort.Label(), f.Order.Label(), f.PerPage))
}

func (m Model) bodyView() string {
	s := m.state
	switch {
	case s.Status == search.StatusIdle:
		return idleView()
	case s.Status == search.StatusLoading:
		return m.spinner.View() + " " + styleDim.Render("Searching GitHub repositories...")
	case s.Status == search.StatusError:
		return errorView(s.Err)
	case s.Empty():
		return emptyView()
	default:
		return m.resultsView()
	}
}

func idleView() string {
	var b strings.Builder
	b.WriteString(styleValue.Render("Discover GitHub repositories"))
	b.WriteString("\n")
	b.WriteString(styleDim.Render(`Search by name, description or topic. Try "react typescript", "machine learning" or "web scraping python".`))
	return b.String()
}

func errorView(msg string) string {
	var b strings.Builder
	b.WriteString(styleError.Render("Something went wrong"))
	b.WriteString("\n")
	b.WriteString(msg)
	if strings.Contains(strings.ToLower(msg), "rate limit") {
		b.WriteString("\n\n")
		b.WriteString(styleHint.Render("You've hit GitHub's rate limit. Add a personal access token in the Token field to get higher limits."))
	}
	return b.String()
}

func emptyView() string {
	var b strings.Builder
	b.WriteString(styleValue.Render("No repositories found"))
	b.WriteString("\n")
	b.WriteString(styleDim.Render("Try adjusting your search terms or filters. You might want to:"))
	for _, tip := range []string{"Use broader keywords", "Remove the language filter", "Check for typos"} {
		b.WriteString("\n")
		b.WriteString(styleDim.Render("  • " + tip))
	}
	return b.String()
}

func (m Model) resultsView() string {
	s := m.state
	var b strings.Builder

	b.WriteString(styleNumber.Render(format.Count(s.Total)))
	b.WriteString(" repositories found")
	if s.Capped() {
		b.WriteString(styleDim.Render(" (showing first 1,000 results)"))
	}
	b.WriteString("\n")
	b.WriteString(styleDim.Render("Searching for: "))
	b.WriteString(styleValue.Render(s.Query))
	b.WriteString("\n")

	start, end := m.visibleRange()
	for i := start; i < end; i++ {
		b.WriteString("\n")
		b.WriteString(m.repoView(s.Items[i], i == m.cursor))
	}
	if end-start < len(s.Items) {
		b.WriteString("\n")
		b.WriteString(styleDim.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(s.Items))))
	}
	if m.cursor < len(s.Items) {
		b.WriteString("\n\n")
		b.WriteString(styleLink.Render(s.Items[m.cursor].HTMLURL))
	}
	return b.String()
}

// visibleRange is the window of results that fits the terminal, kept
// around the cursor.
func (m Model) visibleRange() (int, int) {
	n := len(m.state.Items)
	if m.height <= 0 {
		return 0, n
	}
	rows := max(1, (m.height-20)/linesPerRepo)
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	return start, min(n, start+rows)
}

func (m Model) repoView(r github.Repo, selected bool) string {
	var b strings.Builder

	if selected {
		b.WriteString(styleSelected.Render("▸ " + r.FullName))
	} else {
		b.WriteString("  ")
		b.WriteString(styleRepo.Render(r.FullName))
	}
	b.WriteString("\n    ")

	desc := r.Description
	if desc == "" {
		desc = "No description provided"
	}
	b.WriteString(styleDim.Render(desc))
	b.WriteString("\n    ")

	stats := []string{
		"★ " + styleValue.Render(format.Number(r.Stars)),
		"⑂ " + styleValue.Render(format.Number(r.Forks)),
	}
	if r.Language != "" {
		stats = append(stats, styleLanguage.Render(r.Language))
	}
	stats = append(stats,
		"issues "+styleValue.Render(strconv.Itoa(r.OpenIssues)),
		styleDim.Render(format.TimeAgo(r.UpdatedAt, m.now())),
	)
	b.WriteString(strings.Join(stats, "  "))
	return b.String()
}

// paginationView renders the page window for a result set with more than
// one page.
func (m Model) paginationView() string {
	s := m.state
	if s.Status != search.StatusSuccess {
		return ""
	}
	current := s.ItemsPage
	pages := search.PageNumbers(current, s.TotalPages)
	if pages == nil {
		return ""
	}

	parts := make([]string, 0, len(pages)+2)
	parts = append(parts, pageLink("‹ Prev", current > 1))
	for _, p := range pages {
		switch {
		case p == search.Ellipsis:
			parts = append(parts, styleDim.Render("…"))
		case p == current:
			parts = append(parts, styleCurrent.Render(strconv.Itoa(p)))
		default:
			parts = append(parts, strconv.Itoa(p))
		}
	}
	parts = append(parts, pageLink("Next ›", current < s.TotalPages))
	return strings.Join(parts, " ")
}

func pageLink(label string, enabled bool) string {
	if !enabled {
		return styleDim.Render(label)
	}
	return styleValue.Render(label)
}
