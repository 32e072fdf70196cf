package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/invers"
	"github.com/shopspring/decimal"
)

// barWidth is the number of cells of a text progress bar.
const barWidth = 20

// Dashboard is the home view: who, how much, at what price.
type Dashboard struct {
	Profile invers.Profile
	Stats   invers.Stats
}

// NewDashboard returns the dashboard of a profile.
func NewDashboard(p invers.Profile, s invers.Stats) *Dashboard {
	return &Dashboard{Profile: p, Stats: s}
}

// Name returns the owner's name, or the default one.
func (d *Dashboard) Name() string {
	if strings.TrimSpace(d.Profile.Name) == "" {
		return invers.DefaultProfileName
	}
	return d.Profile.Name
}

func (d *Dashboard) HasImage() bool { return d.Profile.Image != "" }

func (d *Dashboard) DailyA() string { return invers.DailyAmountA.Whole() }
func (d *Dashboard) DailyB() string { return invers.DailyAmountB.Whole() }

// UnitsA returns the estimated BTC units, 8 decimals.
func (d *Dashboard) UnitsA() string { return d.Stats.UnitsA.Fixed(8) }

// UnitsB returns the estimated grams of gold, 4 decimals.
func (d *Dashboard) UnitsB() string { return d.Stats.UnitsB.Fixed(4) }

// Progress returns the yearly progress as a percentage.
func (d *Dashboard) Progress() string { return d.Stats.YearPercent().String() }

// Bar returns the yearly progress as a text bar.
func (d *Dashboard) Bar() string { return bar(d.Stats.YearProgress()) }

func bar(p decimal.Decimal) string {
	filled := int(p.Mul(decimal.NewFromInt(barWidth)).Round(0).IntPart())
	filled = max(0, min(barWidth, filled))
	return fmt.Sprintf("`%s%s`", strings.Repeat("█", filled), strings.Repeat("░", barWidth-filled))
}
