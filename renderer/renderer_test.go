package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/invers"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// outline parses md as GitHub flavored markdown and returns its headings and
// the number of rows of each table, header included.
func outline(t *testing.T, md string) (headings []string, tables []int) {
	t.Helper()
	source := []byte(md)
	p := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser()
	root := p.Parse(text.NewReader(source))
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			headings = append(headings, strings.Repeat("#", n.Level)+" "+string(n.Lines().Value(source)))
		case *east.Table:
			tables = append(tables, n.ChildCount())
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	return headings, tables
}

func equal[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sample(t *testing.T) (*invers.Ledger, *invers.Reports) {
	t.Helper()
	l := invers.NewLedger()
	for _, d := range []int{1, 2, 3, 15} {
		l.Toggle(invers.Day(0, d))
	}
	l.Toggle(invers.Day(1, 1))
	r := invers.NewReports()
	for _, u := range []struct {
		month int
		field invers.Field
		value string
	}{
		{0, invers.Profit, "500"},
		{0, invers.Loss, "100"},
		{0, invers.Note, "good start"},
		{1, invers.Loss, "50"},
		{2, invers.Profit, "1000"},
	} {
		if _, err := r.Update(u.month, u.field, u.value); err != nil {
			t.Fatalf("Update(%d, %v, %q) error: %v", u.month, u.field, u.value, err)
		}
	}
	r.Save(0)
	r.Save(1)
	return l, r
}

func TestRenderDashboard(t *testing.T) {
	l, r := sample(t)
	d := NewDashboard(invers.Profile{Name: "Asha"}, invers.Compute(l, r, invers.DefaultQuote()))
	got := RenderDashboard(d)

	headings, tables := outline(t, got)
	if want := []string{"# Asha", "## Live Prices", "## Investment Progress"}; !equal(headings, want) {
		t.Errorf("RenderDashboard() headings = %q, want %q", headings, want)
	}
	if want := []int{2, 3, 3}; !equal(tables, want) {
		t.Errorf("RenderDashboard() table rows = %v, want %v", tables, want)
	}
	for _, want := range []string{
		"| Total Invested | ₹550 |",
		"| Bitcoin | ₹8,500,000 |",
		"| Gold | ₹7,200 |",
		"0.00005882 BTC",
		"0.0069 Grams",
		"1.4%",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderDashboard() does not contain %q:\n%s", want, got)
		}
	}
}

func TestDashboard_DefaultName(t *testing.T) {
	d := NewDashboard(invers.Profile{}, invers.Stats{})
	if got := d.Name(); got != invers.DefaultProfileName {
		t.Errorf("Name() = %q, want %q", got, invers.DefaultProfileName)
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		p    float64
		want string
	}{
		{0, "`░░░░░░░░░░░░░░░░░░░░`"},
		{0.5, "`██████████░░░░░░░░░░`"},
		{1, "`████████████████████`"},
		{1.5, "`████████████████████`"},
	}
	for _, tt := range tests {
		if got := bar(decimal.NewFromFloat(tt.p)); got != tt.want {
			t.Errorf("bar(%v) = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestRenderPlanner(t *testing.T) {
	l, r := sample(t)

	// January 2025 starts on a Wednesday.
	p := NewPlanner(0, l, r)
	if got, want := p.Weeks[0], []string{"", "", "", "**1** ✓", "**2** ✓", "**3** ✓", "4"}; !equal(got, want) {
		t.Errorf("NewPlanner(0) first week = %q, want %q", got, want)
	}
	if got, want := len(p.Weeks), 5; got != want {
		t.Errorf("NewPlanner(0) weeks = %d, want %d", got, want)
	}

	got := RenderPlanner(p)
	headings, tables := outline(t, got)
	if want := []string{"# January 2025", "## Monthly Report 🔒"}; !equal(headings, want) {
		t.Errorf("RenderPlanner() headings = %q, want %q", headings, want)
	}
	if want := []int{6, 2}; !equal(tables, want) {
		t.Errorf("RenderPlanner() table rows = %v, want %v", tables, want)
	}
	for _, want := range []string{"4 days contributed this month, ₹440 invested.", "| ₹500 | ₹100 |", "Note: good start", "Report Saved."} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderPlanner() does not contain %q:\n%s", want, got)
		}
	}
}

func TestRenderPlanner_Draft(t *testing.T) {
	l, r := sample(t)
	got := RenderPlanner(NewPlanner(2, l, r))
	if strings.Contains(got, "🔒") || strings.Contains(got, "Report Saved.") {
		t.Errorf("RenderPlanner() of a draft shows it locked:\n%s", got)
	}
	if !strings.Contains(got, "| ₹1,000 | - |") {
		t.Errorf("RenderPlanner() draft amounts missing:\n%s", got)
	}

	got = RenderPlanner(NewPlanner(5, l, r))
	if !strings.Contains(got, "No report yet.") {
		t.Errorf("RenderPlanner() of an empty month:\n%s", got)
	}
}

func TestRenderStorage(t *testing.T) {
	_, r := sample(t)
	got := RenderStorage(NewStorage(r))

	headings, tables := outline(t, got)
	if want := []string{"# Data Storage", "## Monthly Records", "### January", "### February"}; !equal(headings, want) {
		t.Errorf("RenderStorage() headings = %q, want %q", headings, want)
	}
	if want := []int{3, 2, 2}; !equal(tables, want) {
		t.Errorf("RenderStorage() table rows = %v, want %v", tables, want)
	}
	for _, want := range []string{"| Net Balance | +₹350 |", "| ₹500 | ₹100 | +₹400 |", "| ₹0 | ₹50 | -₹50 |", "> good start"} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderStorage() does not contain %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "1,000") {
		t.Errorf("RenderStorage() must leave drafts out:\n%s", got)
	}
}

func TestRenderStorage_Empty(t *testing.T) {
	got := RenderStorage(NewStorage(invers.NewReports()))
	if !strings.Contains(got, "No saved records yet.") || !strings.Contains(got, "| Net Balance | - |") {
		t.Errorf("RenderStorage() of no records:\n%s", got)
	}
}
