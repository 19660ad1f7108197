package progress

import (
	"math"
	"time"

	"github.com/jwehrle/salescockpit/internal/period"
)

// Status is the traffic-light classification shown next to a KPI.
type Status string

const (
	StatusGreen  Status = "green"
	StatusYellow Status = "yellow"
	StatusRed    Status = "red"
	// StatusNeutral marks "no target set"; it is never used for errors.
	StatusNeutral Status = "neutral"
)

type Result struct {
	Percent   int     `json:"percent"`
	Status    Status  `json:"status"`
	Projected float64 `json:"projected,omitempty"`
}

// Evaluate classifies an actual against its target. Percent is rounded and
// deliberately not clamped above 100: over-achievement is a displayable
// state. A zero or missing target yields {0, neutral}.
func Evaluate(actual, target float64) Result {
	if target == 0 {
		return Result{Percent: 0, Status: StatusNeutral}
	}

	percent := int(math.Round(actual / target * 100))

	status := StatusRed
	switch {
	case percent >= 100:
		status = StatusGreen
	case percent >= 80:
		status = StatusYellow
	}

	return Result{Percent: percent, Status: status}
}

// Project linearly extrapolates a partial-period actual to the period end.
// Elapsed days are floored at 1, so a projection on the first day of a
// window equals actual * window length.
func Project(actual float64, window period.Window, now time.Time) float64 {
	elapsed := window.ElapsedDays(now)
	return actual * float64(window.Days()) / float64(elapsed)
}

// EvaluateWithProjection is Evaluate plus the end-of-period projection, used
// wherever a window and clock are at hand.
func EvaluateWithProjection(actual, target float64, window period.Window, now time.Time) Result {
	r := Evaluate(actual, target)
	if r.Status == StatusNeutral {
		return r
	}
	r.Projected = Project(actual, window, now)
	return r
}
