package tui

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sprite-ai/daf/internal/layout"
	"github.com/sprite-ai/daf/internal/model"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	switch m.mode {
	case modeHelp:
		return m.renderHelp()
	case modeSamples:
		return m.renderSampleList()
	case modePool:
		return m.renderPoolPicker()
	}

	sample, ok := m.store.Selected()
	if !ok {
		return lipgloss.JoinVertical(lipgloss.Left,
			centralEmptyStyle.Render("No samples loaded"),
			m.renderStatusBar())
	}

	cards := layout.SurroundingItems(&sample, m.store.HiddenIDs())

	// Rebuild the quadrants while tracking the flat cursor, so the
	// selected card keeps its round-robin slot.
	var top, right, bottom, left []string
	for i, card := range cards {
		rendered := m.renderCard(card, i == m.cardIndex)
		switch i % 4 {
		case 0:
			top = append(top, rendered)
		case 1:
			right = append(right, rendered)
		case 2:
			bottom = append(bottom, rendered)
		case 3:
			left = append(left, rendered)
		}
	}

	central := m.renderCentral(&sample)

	middle := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left, left...),
		central,
		lipgloss.JoinVertical(lipgloss.Left, right...),
	)

	page := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.JoinHorizontal(lipgloss.Top, top...),
		middle,
		lipgloss.JoinHorizontal(lipgloss.Top, bottom...),
	)

	return lipgloss.JoinVertical(lipgloss.Left, page, m.renderStatusBar())
}

func (m Model) cardWidth() int {
	w := m.width/4 - 2
	if w < 24 {
		w = 24
	}
	return w
}

func (m Model) renderCard(card model.DisplayItem, selected bool) string {
	width := m.cardWidth()
	expanded := m.store.IsExpanded(card.ID)

	title := titleStyleFor(card.Kind.String()).Render(
		fmt.Sprintf("%s %s", card.Kind, card.ID))

	var body string
	switch card.Kind {
	case model.KindGeneration:
		body = clip(stripTags(card.Generation.Answer), width-4, expanded)
	case model.KindSnippet:
		body = clip(card.Snippet.Text, width-4, expanded) + "\n" +
			helpBarStyle.Render(fmt.Sprintf("%s p.%s", card.Snippet.Source, card.Snippet.Page))
	case model.KindCommentary:
		body = clip(card.Commentary.Comment, width-4, expanded)
		if card.Commentary.Grade != "" {
			body += "\n" + gradeStyle.Render("grade "+card.Commentary.Grade)
		}
	case model.KindMetrics:
		body = m.renderMetricLines(card.Metrics.Values)
	}

	style := cardStyle
	if selected {
		style = cardSelectedStyle
	}
	return style.Width(width).Render(title + "\n" + body)
}

func (m Model) renderCentral(sample *model.Sample) string {
	width := m.width / 2
	if width < 40 {
		width = 40
	}

	central, ok := layout.CentralView(sample)
	if !ok {
		return centralEmptyStyle.Width(width).Render(
			"No central item\n" +
				helpBarStyle.Render("central_block_id does not resolve to a card"))
	}

	var b strings.Builder
	switch central.Kind {
	case model.KindGeneration:
		g := central.Generation
		b.WriteString(queryStyle.Render(g.Query))
		b.WriteString("\n\n")
		if m.regenerating {
			b.WriteString(m.spin.View())
			b.WriteString(" regenerating answer…")
		} else {
			b.WriteString(answerStyle.Render(stripTags(g.Answer)))
		}
		if len(g.AutomatedMetrics) > 0 {
			b.WriteString("\n\n")
			b.WriteString(m.renderMetricLines(g.AutomatedMetrics))
		}
	case model.KindSnippet:
		sn := central.Snippet
		b.WriteString(snippetTitleStyle.Render("snippet " + sn.ID))
		b.WriteString("\n\n")
		b.WriteString(sn.Text)
		b.WriteString("\n")
		b.WriteString(helpBarStyle.Render(fmt.Sprintf("%s p.%s", sn.Source, sn.Page)))
	case model.KindCommentary:
		c := central.Commentary
		b.WriteString(commentaryTitleStyle.Render("commentary " + c.ID))
		b.WriteString("\n\n")
		b.WriteString(c.Comment)
		if c.Grade != "" {
			b.WriteString("\n")
			b.WriteString(gradeStyle.Render("grade " + c.Grade))
		}
	case model.KindMetrics:
		b.WriteString(metricsTitleStyle.Render("metrics " + central.Metrics.ID))
		b.WriteString("\n\n")
		b.WriteString(m.renderMetricLines(central.Metrics.Values))
	}

	return centralStyle.Width(width).Render(b.String())
}

// renderMetricLines prints metrics sorted by name, highlighted while
// the post-regenerate window is open.
func (m Model) renderMetricLines(values map[string]model.MetricValue) string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	style := metricStyle
	if m.highlight {
		style = metricHighlightStyle
	}

	var lines []string
	for _, name := range names {
		v := values[name]
		if v.IsNumber {
			lines = append(lines, style.Render(fmt.Sprintf("%s: %.2f", name, v.Number)))
		} else {
			lines = append(lines, style.Render(fmt.Sprintf("%s: %s", name, v.Text)))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderSampleList() string {
	samples := m.store.Samples()
	selected := m.store.SelectedID()

	var b strings.Builder
	b.WriteString(overlayHeaderStyle.Render("Samples"))
	b.WriteString("\n")

	for i, s := range samples {
		marker := "  "
		if s.ID == selected {
			marker = "* "
		}
		line := fmt.Sprintf("%s%s  %s", marker, s.ID, clip(s.Query(), 60, false))
		style := listItemStyle
		if i == m.sampleIndex {
			style = listSelectedStyle
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpBarStyle.Render("↑/↓ move  enter select  esc back"))
	return b.String()
}

func (m Model) renderPoolPicker() string {
	results := m.poolResults()

	var b strings.Builder
	b.WriteString(overlayHeaderStyle.Render(
		fmt.Sprintf("Reference pool — sort: %s", m.poolSort)))
	b.WriteString("\n")
	b.WriteString(m.poolInput.View())
	b.WriteString("\n\n")

	if len(results) == 0 {
		b.WriteString(helpBarStyle.Render("no matching entries"))
	}
	for i, e := range results {
		line := fmt.Sprintf("%s  %s", e.ID, clip(e.Text, 60, false))
		if e.Source != "" {
			line += helpBarStyle.Render("  (" + e.Source + ")")
		}
		style := listItemStyle
		if i == m.poolIndex {
			style = listSelectedStyle
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpBarStyle.Render("type to filter  tab sort  enter add  esc back"))
	return b.String()
}

func (m Model) renderStatusBar() string {
	samples := m.store.Samples()
	idx := 0
	for i, s := range samples {
		if s.ID == m.store.SelectedID() {
			idx = i
			break
		}
	}

	left := fmt.Sprintf(" Sample %d/%d  %s", idx+1, len(samples), m.store.Source())

	var parts []string
	if n := m.store.HiddenCount(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d hidden", n))
	}
	if n := len(m.store.Warnings()); n > 0 {
		parts = append(parts, warnStyle.Render(fmt.Sprintf("%d load warnings", n)))
	}
	if m.regenerating {
		parts = append(parts, "regenerating")
	}
	parts = append(parts, "? help ")
	right := strings.Join(parts, "  ")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return statusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderHelp() string {
	var b strings.Builder

	b.WriteString(overlayHeaderStyle.Render("daf — Keyboard Shortcuts"))
	b.WriteString("\n\n")

	helpItems := []struct{ key, desc string }{
		{"n/Tab", "Next card"},
		{"N/S-Tab", "Previous card"},
		{"e/Enter", "Expand or collapse card"},
		{"h", "Hide card"},
		{"H", "Show all hidden cards"},
		{"d", "Delete snippet/commentary"},
		{"r", "Regenerate answer"},
		{"s", "Sample selector"},
		{"p", "Reference pool picker"},
		{"?", "Toggle this help"},
		{"q", "Quit"},
	}

	for _, item := range helpItems {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			helpKeyStyle.Width(12).Render(item.key),
			item.desc,
		))
	}

	b.WriteString("\n")
	b.WriteString(helpBarStyle.Render("Press ? to close help"))

	return b.String()
}

// stripTags drops HTML tags and unescapes entities so rich-text
// answers read cleanly in a terminal. It is display-only; the stored
// answer keeps its markup.
func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(html.UnescapeString(b.String()))
}

// clip truncates text for compact cards; expanded cards keep it all.
func clip(s string, max int, expanded bool) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if expanded || max <= 1 || len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
