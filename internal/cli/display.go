package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// =============================================================================
// Display Views
// =============================================================================

// The backend imposes no schema on feed items, so the views below decode
// only the fields the tables show. Unknown fields are ignored and items
// that are not objects are skipped; --json always shows the full payload.

// articleView carries the article fields the CLI displays.
type articleView struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	Category    string `json:"category"`
	Author      string `json:"author"`
	Featured    bool   `json:"featured"`
	Views       int    `json:"views"`
	PublishedAt string `json:"publishedAt"`
}

// categoryView carries the category fields the CLI displays.
type categoryView struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// tickerView carries the ticker fields the CLI displays.
type tickerView struct {
	Symbol string  `json:"symbol"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Change float64 `json:"change"`
}

// decodeArticles projects normalized feed items onto the display shape.
func decodeArticles(list []json.RawMessage) []articleView {
	out := make([]articleView, 0, len(list))
	for _, item := range list {
		var v articleView
		if err := json.Unmarshal(item, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

// decodeCategories projects normalized items onto the display shape.
func decodeCategories(list []json.RawMessage) []categoryView {
	out := make([]categoryView, 0, len(list))
	for _, item := range list {
		var v categoryView
		if err := json.Unmarshal(item, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

// decodeTickers decodes the raw ticker array.
func decodeTickers(raw json.RawMessage) []tickerView {
	var out []tickerView
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

// =============================================================================
// Tables
// =============================================================================

var tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)

func newTable() *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim))
}

// renderArticleTable renders the feed page as a table.
func renderArticleTable(articles []articleView) string {
	rows := make([][]string, 0, len(articles))
	for _, a := range articles {
		marker := ""
		if a.Featured {
			marker = "★"
		}
		rows = append(rows, []string{
			marker,
			truncate(a.Title, 56),
			a.Category,
			formatViews(a.Views),
			formatRelativeTime(a.PublishedAt),
		})
	}

	t := newTable().
		Headers("", "Title", "Category", "Views", "Published").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return tableHeaderStyle
			}
			switch col {
			case 0:
				return StyleWarning
			case 2:
				return StyleHighlight
			case 3:
				return StyleNumber
			case 4:
				return StyleDim
			}
			return StyleValue
		})

	return t.Render()
}

// renderCategoryTable renders the category list as a table.
func renderCategoryTable(categories []categoryView) string {
	rows := make([][]string, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, []string{c.Slug, c.Name, truncate(c.Description, 48)})
	}

	t := newTable().
		Headers("Slug", "Name", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return tableHeaderStyle
			}
			switch col {
			case 0:
				return StyleHighlight
			case 2:
				return StyleDim
			}
			return StyleValue
		})

	return t.Render()
}

// renderTrendingTable renders trending articles with their rank.
func renderTrendingTable(articles []articleView) string {
	rows := make([][]string, 0, len(articles))
	for i, a := range articles {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			truncate(a.Title, 56),
			a.Category,
			formatViews(a.Views),
		})
	}

	t := newTable().
		Headers("#", "Title", "Category", "Views").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return tableHeaderStyle
			}
			switch col {
			case 0:
				return StyleDim
			case 2:
				return StyleHighlight
			case 3:
				return StyleNumber
			}
			return StyleValue
		})

	return t.Render()
}

// renderTickerTable renders the ticker bar, coloring moves by direction.
func renderTickerTable(tickers []tickerView) string {
	rows := make([][]string, 0, len(tickers))
	for _, tk := range tickers {
		rows = append(rows, []string{
			tk.Symbol,
			tk.Name,
			strconv.FormatFloat(tk.Price, 'f', 2, 64),
			fmt.Sprintf("%+.2f%%", tk.Change),
		})
	}

	t := newTable().
		Headers("Symbol", "Name", "Price", "Change").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return tableHeaderStyle
			}
			if col == 3 && row < len(tickers) {
				if tickers[row].Change < 0 {
					return styleDown
				}
				return StyleSuccess
			}
			if col == 0 {
				return StyleHighlight
			}
			return StyleValue
		})

	return t.Render()
}

// =============================================================================
// Detail Output
// =============================================================================

// printArticleDetail prints one article as labeled fields.
func printArticleDetail(a articleView) {
	fmt.Println(StyleTitle.Render(a.Title))
	printNewline()
	printKeyValue("Slug", a.Slug)
	printKeyValue("Category", a.Category)
	printKeyValue("Author", a.Author)
	printKeyValue("Published", formatRelativeTime(a.PublishedAt))
	printKeyValue("Views", formatViews(a.Views))
	if a.Featured {
		printKeyValue("Featured", iconSuccess)
	}
	if a.Summary != "" {
		printNewline()
		fmt.Println(StyleDim.Render(a.Summary))
	}
}

// printCategoryDetail prints one category as labeled fields.
func printCategoryDetail(c categoryView) {
	fmt.Println(StyleTitle.Render(c.Name))
	printNewline()
	printKeyValue("Slug", c.Slug)
	if c.Description != "" {
		printKeyValue("About", c.Description)
	}
}

// =============================================================================
// Raw Output
// =============================================================================

// writeRaw pretty-prints one raw JSON value. Values that happen not to
// be valid JSON (the degrading endpoints never produce these) are
// written as-is.
func writeRaw(w io.Writer, raw json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		_, werr := w.Write(raw)
		return werr
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

// writeRawList pretty-prints normalized items as a JSON array.
func writeRawList(w io.Writer, list []json.RawMessage) error {
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return writeRaw(w, data)
}

// =============================================================================
// Formatters
// =============================================================================

// formatViews renders a view count compactly (4820 -> "4.8k").
func formatViews(n int) string {
	if n >= 1000 {
		return strconv.FormatFloat(float64(n)/1000, 'f', 1, 64) + "k"
	}
	return strconv.Itoa(n)
}

// formatRelativeTime renders an RFC3339 timestamp relative to now,
// falling back to the raw value when it does not parse.
func formatRelativeTime(s string) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}

	diff := time.Since(t)
	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}

// truncate shortens s to max runes, marking the cut with an ellipsis.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
