// File: pkg/formatter/table.go
package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	titleStyle  = lipgloss.NewStyle().Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

type Table struct {
	Headers      []string
	Rows         [][]string
	columnWidths []int
}

// Creates a new table with the given headers
func NewTable(headers []string) *Table {
	t := &Table{
		Headers: headers,
		Rows:    [][]string{},
	}
	t.calculateColumnWidths()
	return t
}

func (t *Table) AddRow(row []string) {
	t.Rows = append(t.Rows, row)
}

// Widths are measured in terminal cells so CJK object names line up
func (t *Table) calculateColumnWidths() {
	t.columnWidths = make([]int, len(t.Headers))
	for i, h := range t.Headers {
		t.columnWidths[i] = lipgloss.Width(h)
	}

	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(t.columnWidths) {
				if w := lipgloss.Width(cell); w > t.columnWidths[i] {
					t.columnWidths[i] = w
				}
			}
		}
	}
}

// Returns the string representation of the table
func (t *Table) String() string {
	if len(t.Headers) == 0 {
		return ""
	}

	t.calculateColumnWidths()

	var sb strings.Builder

	t.writeBorder(&sb)
	sb.WriteString("\n")
	t.writeRow(&sb, t.Headers)
	t.writeBorder(&sb)
	sb.WriteString("\n")

	for _, row := range t.Rows {
		t.writeRow(&sb, row)
	}

	t.writeBorder(&sb)

	return sb.String()
}

func (t *Table) writeRow(sb *strings.Builder, cells []string) {
	sb.WriteString("|")
	for i, width := range t.columnWidths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		sb.WriteString(" ")
		sb.WriteString(cell)
		sb.WriteString(strings.Repeat(" ", width-lipgloss.Width(cell)))
		sb.WriteString(" |")
	}
	sb.WriteString("\n")
}

// writeBorder writes a horizontal border to the string builder
func (t *Table) writeBorder(sb *strings.Builder) {
	sb.WriteString("+")
	for _, width := range t.columnWidths {
		sb.WriteString(strings.Repeat("-", width+2))
		sb.WriteString("+")
	}
}

// Formats a section header with a title
func FormatHeaderSection(title string) string {
	borderLine := strings.Repeat("=", lipgloss.Width(title)+30)
	return borderLine + "\n" + headerStyle.Render("  "+title+"  ") + "\n" + borderLine
}

// Formats a simple section title
func FormatSectionTitle(title string) string {
	return titleStyle.Render("-- " + title + " --")
}

func FormatError(msg string) string {
	return errorStyle.Render(msg)
}
