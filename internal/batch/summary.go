package batch

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mwiater/afplotter/internal/util"
)

const maxPathWidth = 72

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	okStyle     = cellStyle.Foreground(lipgloss.Color("2"))
	failStyle   = cellStyle.Foreground(lipgloss.Color("1"))
)

// Summary collects the results of a batch run.
type Summary struct {
	Results []Result
}

// Succeeded counts children that exited cleanly.
func (s Summary) Succeeded() int {
	n := 0
	for _, r := range s.Results {
		if r.OK() {
			n++
		}
	}
	return n
}

// Failed counts children that did not.
func (s Summary) Failed() int { return len(s.Results) - s.Succeeded() }

// Render formats the summary as a table followed by a totals line.
func (s Summary) Render() string {
	rows := make([][]string, 0, len(s.Results))
	for _, r := range s.Results {
		status := "ok"
		if !r.OK() {
			status = "failed"
		}
		rows = append(rows, []string{
			util.TruncateRunesLeft(r.File, maxPathWidth),
			status,
			strconv.Itoa(r.ExitCode),
			r.Duration.Round(time.Millisecond).String(),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("FILE", "STATUS", "EXIT", "TIME").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col != 1 || row < 0 || row >= len(s.Results):
				return cellStyle
			case s.Results[row].OK():
				return okStyle
			default:
				return failStyle
			}
		})

	return fmt.Sprintf("%s\n%d run(s): %d succeeded, %d failed", t.String(), len(s.Results), s.Succeeded(), s.Failed())
}
