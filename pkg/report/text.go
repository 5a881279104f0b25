package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/sillydeps/pkg/catalog"
	"github.com/matzehuels/sillydeps/pkg/classify"
	"github.com/matzehuels/sillydeps/pkg/deps"
)

// TextOptions configures WriteText.
type TextOptions struct {
	// Verbose adds the dependency type under each finding.
	Verbose bool
	// NoColor disables ANSI styling.
	NoColor bool
	// Lang selects the message language ("en" or "es").
	Lang string
}

// WriteText writes the human-readable report:
//
//	=== Silly dependencies summary ===
//	Direct silly dependencies: 2
//	Indirect silly dependencies: 1
//
//	PADDING (1)
//	- left-pad: Use String.prototype.padStart()
//
// Categories appear in catalog order with "other" last; empty ones are
// omitted. Indirect findings name the package that pulled them in.
func WriteText(w io.Writer, r *classify.Result, opts TextOptions) error {
	s := newStyles(w, opts.NoColor)
	lang := NormalizeLang(opts.Lang)
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, s.title.Render("=== "+tr(lang, msgSummaryTitle)+" ==="))
	fmt.Fprintf(bw, "%s: %s\n", tr(lang, msgSummaryDirect), s.number.Render(strconv.Itoa(r.DirectCount)))
	fmt.Fprintf(bw, "%s: %s\n", tr(lang, msgSummaryIndirect), s.number.Render(strconv.Itoa(r.IndirectCount)))
	fmt.Fprintln(bw)

	categories := r.NonEmpty()
	if len(categories) == 0 {
		fmt.Fprintln(bw, s.dim.Render(tr(lang, msgNoFindings)))
		return bw.Flush()
	}

	for _, c := range categories {
		items := r.ByCategory[c]
		fmt.Fprintln(bw, s.category.Render(fmt.Sprintf("%s (%d)", strings.ToUpper(c), len(items))))
		for _, f := range items {
			fmt.Fprintf(bw, "- %s: %s\n", f.Name, s.solution.Render(suggestion(f, lang)))
			if f.Kind == deps.KindIndirect {
				fmt.Fprintln(bw, "  "+s.indirect.Render(fmt.Sprintf("(%s: %s)", tr(lang, msgIncludedBy), f.Via)))
			}
			if opts.Verbose {
				kind := s.direct.Render(tr(lang, msgTypeDirect))
				if f.Kind == deps.KindIndirect {
					kind = s.indirect.Render(tr(lang, msgTypeIndirect))
				}
				fmt.Fprintf(bw, "  %s: %s\n", tr(lang, msgType), kind)
			}
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}

// suggestion localizes the generic advice attached to "other" findings.
// Catalog suggestions are printed as written.
func suggestion(f classify.Finding, lang string) string {
	if f.Category == catalog.Other && f.Suggestion == classify.DefaultSuggestion {
		return tr(lang, msgCheckIfNeeded)
	}
	return f.Suggestion
}
