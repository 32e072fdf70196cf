package coach

import (
	"context"
	"fmt"

	"github.com/etnz/invers"
	"github.com/etnz/invers/date"
	"github.com/shopspring/decimal"
	"google.golang.org/genai"
)

// MonthlyReport lets the model read the report of a month.
type MonthlyReport struct {
	Reports *invers.Reports
}

func (MonthlyReport) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        "monthly_report",
		Description: "Returns the user's report of a month: profit, loss, note and whether it is locked. Drafts are not final.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"month": {
					Type:        genai.TypeString,
					Description: "The month, as an English name or a number from 1 to 12.",
				},
			},
			Required: []string{"month"},
		},
	}
}

func (f MonthlyReport) Call(_ context.Context, id string, args map[string]any) *genai.FunctionResponse {
	name := f.Declaration().Name
	arg, ok := args["month"].(string)
	if !ok {
		return failure(id, name, fmt.Errorf("invalid month type %T, expected string", args["month"]))
	}
	m, err := date.ParseMonth(arg)
	if err != nil {
		return failure(id, name, err)
	}
	rep, ok := f.Reports.Get(m)
	if !ok {
		return failure(id, name, fmt.Errorf("no report for %s", date.MonthName(m)))
	}
	return success(id, name, reportOutput(m, rep))
}

func reportOutput(m int, rep invers.MonthlyReport) map[string]any {
	return map[string]any{
		"month":  date.MonthName(m),
		"locked": rep.Locked,
		"profit": nullString(rep.Profit),
		"loss":   nullString(rep.Loss),
		"note":   rep.Note,
	}
}

func nullString(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

// HabitStats lets the model read the aggregated figures.
type HabitStats struct {
	Stats invers.Stats
}

func (HabitStats) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        "habit_stats",
		Description: "Returns the number of contributed days, the amounts invested in Bitcoin and gold, the yearly progress and the net balance of locked reports.",
		Parameters:  &genai.Schema{Type: genai.TypeObject},
	}
}

func (f HabitStats) Call(_ context.Context, id string, _ map[string]any) *genai.FunctionResponse {
	s := f.Stats
	return success(id, f.Declaration().Name, map[string]any{
		"days":          s.TotalDays,
		"invested_btc":  s.InvestedA.Whole(),
		"invested_gold": s.InvestedB.Whole(),
		"year_progress": s.YearProgress().StringFixed(3),
		"net_balance":   s.Balance.Net.Whole(),
		"locked_months": s.Balance.Records,
	})
}
