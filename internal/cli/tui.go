package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// ArticleListModel is the bubbletea model for interactive article
// selection. When the program finishes, Selected carries the article
// the user picked, or nil if they quit.
type ArticleListModel struct {
	Articles []articleView
	Cursor   int
	Selected *articleView
	Height   int
	Offset   int
}

// NewArticleListModel creates a list model over one fetched feed page.
func NewArticleListModel(articles []articleView) ArticleListModel {
	return ArticleListModel{
		Articles: articles,
		Cursor:   0,
		Height:   15,
		Offset:   0,
	}
}

func (m ArticleListModel) Init() tea.Cmd {
	return nil
}

func (m ArticleListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Articles)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Articles) == 0 {
				return m, tea.Quit
			}
			article := m.Articles[m.Cursor]
			m.Selected = &article
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ArticleListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Article"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ open  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Articles) {
		end = len(m.Articles)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		a := m.Articles[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		marker := ""
		if a.Featured {
			marker = "★"
		}

		rows = append(rows, []string{
			cursor,
			marker,
			truncate(a.Title, 48),
			a.Category,
			formatRelativeTime(a.PublishedAt),
		})
	}

	t := newTable().
		Headers("", "", "Title", "Category", "Published").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return tableHeaderStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Articles) {
				return lipgloss.NewStyle()
			}
			if actualIdx == m.Cursor {
				return listSelectedStyle
			}
			if col == 1 {
				return StyleWarning
			}
			if col == 4 {
				return listDimStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Articles))))

	return b.String()
}
