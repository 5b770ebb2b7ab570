package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/labelsheet/pkg/record"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// RecordListModel - Interactive record selection
// =============================================================================

// RecordListModel is the bubbletea model for picking the records to print.
// Every record starts selected.
type RecordListModel struct {
	Records   []record.Record
	Chosen    []bool
	Cursor    int
	Height    int
	Offset    int
	Confirmed bool
}

// NewRecordListModel creates a record list with all records selected.
func NewRecordListModel(recs []record.Record) RecordListModel {
	chosen := make([]bool, len(recs))
	for i := range chosen {
		chosen[i] = true
	}
	return RecordListModel{Records: recs, Chosen: chosen, Height: 15}
}

func (m RecordListModel) Init() tea.Cmd {
	return nil
}

func (m RecordListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Records)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "x":
			if len(m.Chosen) > 0 {
				m.Chosen[m.Cursor] = !m.Chosen[m.Cursor]
			}
		case "a":
			all := m.Count() < len(m.Records)
			for i := range m.Chosen {
				m.Chosen[i] = all
			}
		case "enter":
			m.Confirmed = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

// Count returns the number of selected records.
func (m RecordListModel) Count() int {
	n := 0
	for _, c := range m.Chosen {
		if c {
			n++
		}
	}
	return n
}

// Selection returns the selected records in input order, or nil when the
// list was dismissed without confirming.
func (m RecordListModel) Selection() []record.Record {
	if !m.Confirmed {
		return nil
	}
	out := make([]record.Record, 0, m.Count())
	for i, r := range m.Records {
		if m.Chosen[i] {
			out = append(out, r)
		}
	}
	return out
}

func (m RecordListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Records"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all  ⏎ build  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Records))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Records[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		mark := "[ ]"
		if m.Chosen[i] {
			mark = "[x]"
		}
		kind := ""
		if r.Seed {
			kind = "seed"
		}
		name := strings.TrimSpace(strings.Join([]string{r.Genus, r.Species}, " "))
		rows = append(rows, []string{cursor + mark, r.Identifier, r.FieldNumber, name, kind})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Number", "Taxon", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Records) {
				return lipgloss.NewStyle()
			}
			switch {
			case idx == m.Cursor:
				return listSelectedStyle
			case !m.Chosen[idx]:
				return listDimStyle
			case col == 4:
				return lipgloss.NewStyle().Foreground(colorGreen)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  %d selected", m.Cursor+1, len(m.Records), m.Count())))

	return b.String()
}

// pickRecords runs the record list and returns the confirmed selection.
func pickRecords(recs []record.Record) ([]record.Record, error) {
	p := tea.NewProgram(NewRecordListModel(recs))
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	fm, ok := final.(RecordListModel)
	if !ok {
		return nil, nil
	}
	return fm.Selection(), nil
}
