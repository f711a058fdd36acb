// Package analysis implements the financial analysis engine: a pure,
// stateless transformation of a user's transactions, savings targets and
// category budgets into a consolidated report with aggregates, goal
// progress, budget comparison, spending trend, a composite health score
// and prioritized recommendations.
//
// The engine performs no I/O, reads no clocks and holds no state between
// calls; every invocation recomputes the full report from the supplied
// collections. Concurrent invocations are safe as long as the caller does
// not mutate the input slices during a call.
package analysis

// HealthWeights holds the maximum points each factor contributes to the
// composite health score. The default split (30/25/20/15/10) is a policy
// choice inherited from the legacy report; keep the values if byte-for-byte
// score parity matters.
type HealthWeights struct {
	SavingsRate     int
	NetIncome       int
	TargetProgress  int
	BudgetAdherence int
	Trend           int
}

// Max returns the highest achievable points total.
func (w HealthWeights) Max() int {
	return w.SavingsRate + w.NetIncome + w.TargetProgress + w.BudgetAdherence + w.Trend
}

// Config collects the engine's tunable policy constants.
type Config struct {
	// OnTrackTolerance is the fraction of expected linear progress a target
	// may lag and still count as on-track. Legacy value: 0.8.
	OnTrackTolerance float64

	Weights HealthWeights

	NeedsWants NeedsWantsConfig
}

// DefaultConfig returns the legacy-compatible policy values.
func DefaultConfig() Config {
	return Config{
		OnTrackTolerance: 0.8,
		Weights: HealthWeights{
			SavingsRate:     30,
			NetIncome:       25,
			TargetProgress:  20,
			BudgetAdherence: 15,
			Trend:           10,
		},
		NeedsWants: DefaultNeedsWantsConfig(),
	}
}
