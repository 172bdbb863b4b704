// Package staffing classifies how well a shift's headcount targets are met.
package staffing

// Level is a four-tier staffing classification. Lower values are worse, so
// levels order naturally by urgency.
type Level int

const (
	Critical Level = iota // < 50% filled
	Low                   // 50-80% filled
	OK                    // 80-100% filled
	Full                  // >= 100% filled
)

func (l Level) String() string {
	switch l {
	case Critical:
		return "critical"
	case Low:
		return "low"
	case OK:
		return "ok"
	case Full:
		return "full"
	}
	return "unknown"
}

// Calculate classifies a fill ratio for one role. A zero requirement is
// always Full regardless of the current count.
func Calculate(current, required int) Level {
	if required <= 0 {
		return Full
	}
	ratio := float64(current) / float64(required)
	switch {
	case ratio >= 1.0:
		return Full
	case ratio >= 0.8:
		return OK
	case ratio >= 0.5:
		return Low
	default:
		return Critical
	}
}

// Overall combines two role levels into a shift-wide level; the worse
// classification dominates.
func Overall(a, b Level) Level {
	if a <= b {
		return a
	}
	return b
}

// Shortfall is the number of open slots for a role, never negative.
func Shortfall(current, required int) int {
	if current >= required {
		return 0
	}
	return required - current
}
