package discover

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Display formatting rules. Descriptions are clipped so one overlong
// repository cannot blow the table apart.
const (
	maxDescriptionLength = 50
	ellipsis             = "..."
	noDescription        = "No description"
	unknownLanguage      = "Unknown"
)

// RenderTable formats at most maxDisplay result rows as a bordered table.
// Rows keep their incoming order: retrieval order, or filter-match order
// when a file filter produced the matches. withFiles adds the matched
// file names column.
func RenderTable(matches []Match, maxDisplay int, withFiles bool) string {
	headers := []string{"Name", "Description", "Stars", "Forks", "Language", "Updated"}
	if withFiles {
		headers = append(headers, "Files Found")
	}

	headerStyle := lipgloss.NewStyle().Bold(true)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		})

	for i, m := range matches {
		if i >= maxDisplay {
			break
		}
		repo := m.Repository
		row := []string{
			repo.Name,
			describe(repo.Description),
			strconv.Itoa(repo.Stars),
			strconv.Itoa(repo.Forks),
			language(repo.Language),
			repo.UpdatedAt.Format("2006-01-02"),
		}
		if withFiles {
			row = append(row, strings.Join(m.MatchedFiles, ", "))
		}
		t.Row(row...)
	}

	return t.Render()
}

func describe(description *string) string {
	if description == nil || *description == "" {
		return noDescription
	}
	return truncate(*description, maxDescriptionLength)
}

func language(lang *string) string {
	if lang == nil || *lang == "" {
		return unknownLanguage
	}
	return *lang
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-len(ellipsis)]) + ellipsis
}
