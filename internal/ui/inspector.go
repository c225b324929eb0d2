package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"schemac/internal/schema"
	"schemac/internal/source"
)

// layoutRow is one renderable line of an inspected struct's bit layout.
type layoutRow struct {
	name    string
	kind    string
	offset  string
	size    string
	variant string
}

// InspectorModel is a Bubble Tea model that lets a user step through the
// fields a StructTranslator laid out for one node, showing each field's
// offset and width the way a hex-dump tool shows byte ranges.
type InspectorModel struct {
	title  string
	rows   []layoutRow
	cursor int
	width  int
	height int
}

// NewInspectorModel builds an InspectorModel for node, resolving field names
// through interner.
func NewInspectorModel(title string, node schema.Node, interner *source.Interner) InspectorModel {
	rows := make([]layoutRow, 0, len(node.Struct.Fields))
	for _, f := range node.Struct.Fields {
		name, _ := interner.Lookup(f.Name)
		if name == "" {
			name = fmt.Sprintf("<anon %d>", f.Ordinal)
		}
		if f.Variant == schema.FieldGroup {
			rows = append(rows, layoutRow{
				name:    name,
				kind:    "group",
				offset:  "-",
				size:    "-",
				variant: "group",
			})
			continue
		}
		rows = append(rows, layoutRow{
			name:    name,
			kind:    f.Type.Kind.String(),
			offset:  offsetLabel(f),
			size:    sizeLabel(f),
			variant: "field",
		})
	}
	return InspectorModel{title: title, rows: rows, width: 80, height: 24}
}

func offsetLabel(f schema.Field) string {
	if f.Type.Kind.IsPointer() {
		return fmt.Sprintf("ptr[%d]", f.Offset)
	}
	return fmt.Sprintf("bit %d", f.Offset)
}

func sizeLabel(f schema.Field) string {
	if f.Type.Kind.IsPointer() {
		return "1 word"
	}
	if f.Type.Kind == schema.Void {
		return "0 bits"
	}
	return fmt.Sprintf("%d bits", uint32(1)<<f.Type.Kind.LgSize())
}

func (m InspectorModel) Init() tea.Cmd { return nil }

func (m InspectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m InspectorModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	normalStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	groupStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("5"))

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString("(no fields)\n")
		return b.String()
	}

	for i, row := range m.rows {
		line := fmt.Sprintf("%-24s %-10s %-10s %-8s", row.name, row.kind, row.offset, row.size)
		style := normalStyle
		if row.variant == "group" {
			style = groupStyle
		}
		if i == m.cursor {
			style = selectedStyle
			line = "> " + line
		} else {
			line = "  " + line
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\nuse up/down (or j/k) to move, q to quit\n")
	return b.String()
}
