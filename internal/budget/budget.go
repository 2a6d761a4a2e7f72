// Package budget aggregates stop costs against a trip's declared
// budget. All functions are pure; rendering the severity is left to
// the caller.
package budget

import "github.com/ravenerp/journey-sync/internal/model"

// Severity classifies spending pressure for display purposes.
type Severity int

const (
	// Normal means spending sits below 80% of the budget, or the
	// trip has no budget at all.
	Normal Severity = iota
	// Warning means spending reached 80% of the budget.
	Warning
	// Critical means spending reached or passed the full budget.
	Critical
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Critical:
		return "critical"
	default:
		return "normal"
	}
}

// DayCost sums the costs of every stop in a day.
func DayCost(d model.Day) float64 {
	var total float64
	for _, p := range d.Puntos {
		total += p.Costo
	}

	return total
}

// TotalCost sums every stop cost across the whole itinerary.
func TotalCost(days []model.Day) float64 {
	var total float64
	for _, d := range days {
		total += DayCost(d)
	}

	return total
}

// IsOverBudget reports whether spending exceeds a positive budget.
// Trips without a budget are never over it.
func IsOverBudget(budget, total float64) bool {
	return budget > 0 && total > budget
}

// Percentage is spending as a percentage of the budget. A trip
// without a budget reads as 0; overspend reads past 100, uncapped.
func Percentage(budget, total float64) float64 {
	if budget <= 0 {
		return 0
	}

	return total / budget * 100
}

// Classify maps a spending percentage onto a severity band.
func Classify(percentage float64) Severity {
	switch {
	case percentage >= 100:
		return Critical
	case percentage >= 80:
		return Warning
	default:
		return Normal
	}
}

// Summary bundles the derived budget figures for one trip.
type Summary struct {
	Total      float64
	Budget     float64
	Percentage float64
	Over       bool
	Severity   Severity
}

// Summarize computes the full budget picture for a trip.
func Summarize(trip model.Trip) Summary {
	total := TotalCost(trip.Itinerario)
	pct := Percentage(trip.Presupuesto, total)

	return Summary{
		Total:      total,
		Budget:     trip.Presupuesto,
		Percentage: pct,
		Over:       IsOverBudget(trip.Presupuesto, total),
		Severity:   Classify(pct),
	}
}
