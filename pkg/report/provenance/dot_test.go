package provenance

import (
	"context"
	"html"
	"strings"
	"testing"

	"github.com/matzehuels/sillydeps/pkg/catalog"
	"github.com/matzehuels/sillydeps/pkg/classify"
	"github.com/matzehuels/sillydeps/pkg/deps"
)

func testResult(t *testing.T) *classify.Result {
	t.Helper()
	cat, err := catalog.Load([]byte(`{
		"padding": {"left-pad": "Use padStart()"},
		"numbers": {"is-odd": "Use n % 2", "is-number": "Use typeof"}
	}`))
	if err != nil {
		t.Fatal(err)
	}
	set := &deps.Set{
		Direct: []string{"left-pad", "is-odd"},
		Indirect: []deps.IndirectDependency{
			{Name: "is-number", Parent: "is-odd"},
			{Name: "kind-of", Parent: "webpack"},
		},
	}
	return classify.Classify(set, cat, classify.Options{})
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testResult(t), Options{Project: "my-app"})

	for _, want := range []string{
		`"project:my-app" [label="my-app"`,
		`"project:my-app" -> "pkg:left-pad";`,
		`"project:my-app" -> "pkg:is-odd";`,
		`"pkg:is-odd" -> "pkg:is-number";`,
		`"pkg:webpack" [label="webpack", style="rounded,dashed"];`,
		`"pkg:webpack" -> "pkg:kind-of";`,
		`fillcolor="#fbe3a1"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, `"pkg:is-odd" [label="is-odd", style="rounded,dashed"]`) {
		t.Error("a flagged parent must not be redrawn as a plain parent")
	}
}

func TestToDOTDefaults(t *testing.T) {
	dot := ToDOT(testResult(t), Options{Detailed: true})
	if !strings.Contains(dot, `"project:root"`) {
		t.Error("project should default to root")
	}
	if !strings.Contains(dot, `[numbers]`) {
		t.Error("detailed labels should include the category")
	}
	if ToDOT(testResult(t), Options{}) != ToDOT(testResult(t), Options{}) {
		t.Error("ToDOT should be deterministic")
	}
}

func TestToDOTEmpty(t *testing.T) {
	cat, err := catalog.Load([]byte(`{"padding": {"left-pad": "x"}}`))
	if err != nil {
		t.Fatal(err)
	}
	dot := ToDOT(classify.Classify(&deps.Set{}, cat, classify.Options{}), Options{})
	if strings.Contains(dot, "->") {
		t.Errorf("empty result should have no edges:\n%s", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering is slow")
	}
	svg, err := RenderSVG(context.Background(), ToDOT(testResult(t), Options{Project: "my-app"}))
	if err != nil {
		t.Fatalf("RenderSVG failed: %v", err)
	}
	// Graphviz escapes "-" in labels as "&#45;".
	out := html.UnescapeString(string(svg))
	for _, want := range []string{"<svg", "left-pad", "is-odd", "is-number"} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG output missing %q", want)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="x"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `width="100" height="50"`) {
		t.Errorf("normalizeViewBox = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg>")); string(got) != "<svg>" {
		t.Error("svg without viewBox should be unchanged")
	}
}
