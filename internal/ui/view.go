package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/dshills/textdir/internal/direction"
)

type uiStyles struct {
	headerStyle lipgloss.Style
	mutedStyle  lipgloss.Style
	statusStyle lipgloss.Style
	warnStyle   lipgloss.Style
	cursorStyle lipgloss.Style
	storedStyle lipgloss.Style
	ltrStyle    lipgloss.Style
	rtlStyle    lipgloss.Style
	panelBorder lipgloss.Style
}

func stylesFor(model Model) uiStyles {
	if strings.ToLower(model.app.Config().Theme) == "light" {
		return uiStyles{
			headerStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("235")),
			mutedStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
			statusStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("25")).Bold(true),
			warnStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("124")).Bold(true),
			cursorStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("90")).Bold(true),
			storedStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
			ltrStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("22")),
			rtlStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("91")),
			panelBorder: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		}
	}
	return uiStyles{
		headerStyle: lipgloss.NewStyle().Bold(true),
		mutedStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		statusStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("69")).Bold(true),
		warnStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("204")).Bold(true),
		cursorStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		storedStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		ltrStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		rtlStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("213")),
		panelBorder: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}

func (model Model) View() string {
	styles := stylesFor(model)
	if model.showHelp {
		return renderHelpView(model, styles)
	}

	body := renderBody(model, styles)
	footer := renderFooter(model, styles)
	return strings.Join([]string{body, footer}, "\n")
}

func renderBody(model Model, styles uiStyles) string {
	bodyHeight := model.listHeight()
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	leftWidth, rightWidth, showRight := splitPanels(model.width)
	left := renderListPanel(model, styles, bodyHeight, leftWidth)
	if !showRight {
		return left
	}
	sep := lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Render("│")
	right := renderPreviewPanel(model, styles, rightWidth, bodyHeight)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, sep, right)
}

func renderListPanel(model Model, styles uiStyles, height, width int) string {
	if width < 20 {
		width = 20
	}
	contentWidth := maxInt(width-2, 10)

	state := "IDLE"
	if model.loading {
		state = "SCANNING"
	}
	headerLine := padLine(styles.headerStyle.Render("textdir")+"  "+model.app.Root(), styles.statusStyle.Render(state), contentWidth)

	listHeight := height - 1
	if listHeight < 1 {
		listHeight = 1
	}
	if len(model.files) == 0 {
		message := "No files in vault"
		if model.loading {
			message = "Scanning..."
		}
		lines := []string{headerLine, message}
		for len(lines) < height {
			lines = append(lines, "")
		}
		return styles.panelBorder.Width(contentWidth).Render(strings.Join(lines, "\n"))
	}

	start := clamp(model.viewTop, 0, maxInt(len(model.files)-1, 0))
	end := start + listHeight
	if end > len(model.files) {
		end = len(model.files)
	}

	lines := make([]string, 0, height)
	lines = append(lines, headerLine)
	// badge + marker + separating spaces
	nameWidth := contentWidth - 8
	for index := start; index < end; index++ {
		entry := model.files[index]
		marker := " "
		if entry.stored {
			marker = "•"
		}
		name := entry.path
		if entry.missing {
			name += " (missing)"
		}
		name = truncateLine(name, nameWidth)

		var line string
		if index == model.cursor {
			line = styles.cursorStyle.Render(fmt.Sprintf("%s %s %s", directionGlyph(entry.dir), marker, name))
		} else {
			if entry.stored {
				marker = styles.storedStyle.Render("•")
			}
			if entry.missing {
				name = styles.mutedStyle.Render(name)
			}
			line = fmt.Sprintf("%s %s %s", badgeFor(entry.dir, styles), marker, name)
		}
		lines = append(lines, line)
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return styles.panelBorder.Width(contentWidth).Render(strings.Join(lines, "\n"))
}

func renderPreviewPanel(model Model, styles uiStyles, width, height int) string {
	contentWidth := maxInt(width-2, 10)
	entry := model.currentEntry()
	if entry == nil {
		return styles.panelBorder.Width(contentWidth).Render("No selection")
	}

	// The pane renders with the live editing direction, which tracks the
	// selection and any session-only toggles.
	previewDir := model.edit.Direction()
	header := padLine(styles.headerStyle.Render(entry.path), badgeFor(previewDir, styles)+" "+styles.mutedStyle.Render(entry.source.String()), contentWidth)

	lines := []string{header, ""}
	switch {
	case entry.missing:
		lines = append(lines, styles.mutedStyle.Render("File not found; stored entry only."))
	case model.previewErr != nil:
		lines = append(lines, styles.warnStyle.Render(fmt.Sprintf("Preview error: %v", model.previewErr)))
	case model.previewPath != entry.path:
		lines = append(lines, styles.mutedStyle.Render("Loading..."))
	default:
		lineStyle := lipgloss.NewStyle().Width(contentWidth)
		if previewDir == direction.RTL {
			lineStyle = lineStyle.Align(lipgloss.Right)
		}
		budget := height - 2
		for _, raw := range model.previewLines {
			if budget <= 0 {
				break
			}
			lines = append(lines, lineStyle.Render(truncateLine(raw, contentWidth)))
			budget--
		}
	}

	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return styles.panelBorder.Width(contentWidth).Render(strings.Join(lines, "\n"))
}

func renderFooter(model Model, styles uiStyles) string {
	statusLine := truncateLine(model.status, model.width)
	statusStyle := styles.statusStyle
	if strings.Contains(strings.ToLower(model.status), "error") {
		statusStyle = styles.warnStyle
	}

	storedCount := 0
	for _, f := range model.files {
		if f.stored {
			storedCount++
		}
	}
	remember := "remember off"
	if model.app.Store().RememberPerFile() {
		remember = "remember on"
	}
	info := fmt.Sprintf("%d files  %d stored  default %s  %s", len(model.files), storedCount, directionGlyph(model.app.Store().DefaultDirection()), remember)

	keys := "↑/↓ move  d switch  l/r set  x clear  D default  m remember  p prune  R rescan  ? help  q quit"
	if model.confirm != confirmNone {
		keys = "y confirm  n cancel"
	}
	footerLine := padLine(info, keys, model.width)
	return strings.Join([]string{statusStyle.Render(statusLine), styles.mutedStyle.Render(footerLine)}, "\n")
}

func renderHelpView(model Model, styles uiStyles) string {
	bindings := []key.Binding{
		model.keys.Up,
		model.keys.Down,
		model.keys.Toggle,
		model.keys.SetLTR,
		model.keys.SetRTL,
		model.keys.Clear,
		model.keys.Default,
		model.keys.Remember,
		model.keys.Prune,
		model.keys.Refresh,
		model.keys.Confirm,
		model.keys.Cancel,
		model.keys.Help,
		model.keys.Quit,
	}

	lines := []string{styles.headerStyle.Render("textdir Help"), ""}
	lines = append(lines, styles.headerStyle.Render("Direction"))
	lines = append(lines, "d switch between ltr and rtl", "l force ltr", "r force rtl", "x forget the stored entry")
	lines = append(lines, "", styles.headerStyle.Render("Settings"))
	lines = append(lines, "D cycle the vault default", "m toggle per-file memory")
	lines = append(lines, "", styles.headerStyle.Render("Maintenance"))
	lines = append(lines, "p prune entries for deleted files", "R rescan the vault")
	lines = append(lines, "", styles.headerStyle.Render("Keys"))
	for _, binding := range bindings {
		keysLabel := strings.Join(binding.Keys(), ", ")
		lines = append(lines, fmt.Sprintf("%-14s %s", keysLabel, binding.Help().Desc))
	}
	lines = append(lines, "", "Press ? to close help")

	width := model.width
	if width <= 0 {
		width = 80
	}
	return styles.panelBorder.Width(maxInt(width-2, 10)).Render(strings.Join(lines, "\n"))
}

func badgeFor(d direction.Direction, styles uiStyles) string {
	if d == direction.RTL {
		return styles.rtlStyle.Render("← rtl")
	}
	return styles.ltrStyle.Render("→ ltr")
}

func directionGlyph(d direction.Direction) string {
	if d == direction.RTL {
		return "← rtl"
	}
	return "→ ltr"
}

func padLine(left, right string, width int) string {
	if width <= 0 {
		return left
	}
	space := width - lipgloss.Width(left) - lipgloss.Width(right)
	if space < 1 {
		return left + " " + right
	}
	return left + strings.Repeat(" ", space) + right
}

func splitPanels(width int) (int, int, bool) {
	if width < 80 {
		return width, 0, false
	}
	left := int(float64(width) * 0.55)
	if left < 40 {
		left = 40
	}
	right := width - left - 1
	if right < 30 {
		return width, 0, false
	}
	return left, right, true
}

func truncateLine(line string, width int) string {
	if width <= 0 || lipgloss.Width(line) <= width {
		return line
	}
	runes := []rune(line)
	for len(runes) > 0 && lipgloss.Width(string(runes)) > width-1 {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
