package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/sillydeps/pkg/classify"
	"github.com/matzehuels/sillydeps/pkg/deps"
)

// CategoryStats counts the findings of one category by kind.
type CategoryStats struct {
	Category string
	Direct   int
	Indirect int
}

// Total returns Direct+Indirect.
func (c CategoryStats) Total() int { return c.Direct + c.Indirect }

// Stats returns per-category counts in result order, empty categories
// included.
func Stats(r *classify.Result) []CategoryStats {
	out := make([]CategoryStats, 0, len(r.Categories))
	for _, c := range r.Categories {
		st := CategoryStats{Category: c}
		for _, f := range r.ByCategory[c] {
			if f.Kind == deps.KindIndirect {
				st.Indirect++
			} else {
				st.Direct++
			}
		}
		out = append(out, st)
	}
	return out
}

// WriteStats writes a per-category table of findings.
func WriteStats(w io.Writer, r *classify.Result, opts TextOptions) error {
	s := newStyles(w, opts.NoColor)
	lang := NormalizeLang(opts.Lang)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(s.dim).
		Headers(tr(lang, msgStatsCategory), tr(lang, msgStatsDirect), tr(lang, msgStatsIndirect), tr(lang, msgStatsTotal))

	var direct, indirect int
	for _, st := range Stats(r) {
		t.Row(st.Category, strconv.Itoa(st.Direct), strconv.Itoa(st.Indirect), strconv.Itoa(st.Total()))
		direct += st.Direct
		indirect += st.Indirect
	}
	t.Row(tr(lang, msgStatsTotal), strconv.Itoa(direct), strconv.Itoa(indirect), strconv.Itoa(direct+indirect))

	_, err := fmt.Fprintln(w, t.Render())
	return err
}
