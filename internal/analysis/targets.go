package analysis

import (
	"time"

	"github.com/shopspring/decimal"

	"bilancio/internal/core"
)

// TargetSummary reports savings-goal totals and pacing classification.
type TargetSummary struct {
	TotalTargets       int             `json:"totalTargets"`
	TotalTargetAmount  decimal.Decimal `json:"totalTargetAmount"`
	TotalCurrentAmount decimal.Decimal `json:"totalCurrentAmount"`
	OverallProgress    decimal.Decimal `json:"overallProgress"`
	Completed          int             `json:"completed"`
	OnTrack            int             `json:"onTrack"`
	Behind             int             `json:"behind"`
}

// AnalyzeTargets computes completion and pacing for each savings target
// against the supplied reference time.
//
// A target is completed once its current amount reaches the target amount.
// For targets with a deadline, expected progress is linear from creation to
// deadline; the target is on-track while actual progress stays within
// tolerance (a fraction, legacy 0.8) of that expectation. Targets without a
// deadline are excluded from the on-track check but still count in totals.
// Behind is derived as total - completed - onTrack so the three counts
// always partition the total.
func AnalyzeTargets(targets []core.Target, now time.Time, tolerance float64) TargetSummary {
	var (
		targetCents  int64
		currentCents int64
		completed    int
		onTrack      int
	)

	for _, t := range targets {
		targetCents += t.TargetAmount.Cents
		currentCents += t.CurrentAmount.Cents

		if t.CurrentAmount.Cents >= t.TargetAmount.Cents {
			completed++
			continue
		}
		if t.TargetDate.IsEmpty() || t.CreatedAt.IsEmpty() {
			continue
		}

		totalDays := t.TargetDate.Sub(t.CreatedAt.Time).Hours() / 24
		daysPassed := now.Sub(t.CreatedAt.Time).Hours() / 24

		expected := 1.0
		if totalDays > 0 {
			expected = daysPassed / totalDays
			if expected > 1 {
				expected = 1
			}
		}

		var actual float64
		if t.TargetAmount.Cents > 0 {
			actual = float64(t.CurrentAmount.Cents) / float64(t.TargetAmount.Cents)
		}
		if actual >= expected*tolerance {
			onTrack++
		}
	}

	summary := TargetSummary{
		TotalTargets:       len(targets),
		TotalTargetAmount:  core.Money{Cents: targetCents}.Decimal(),
		TotalCurrentAmount: core.Money{Cents: currentCents}.Decimal(),
		OverallProgress:    percentage(currentCents, targetCents),
		Completed:          completed,
		OnTrack:            onTrack,
		Behind:             len(targets) - completed - onTrack,
	}
	return summary
}
