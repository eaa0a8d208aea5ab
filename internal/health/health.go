package health

type Band string

const (
	BandExcellent Band = "excellent"
	BandGood      Band = "good"
	BandFair      Band = "fair"
	BandPoor      Band = "poor"
	BandCritical  Band = "critical"
)

// Percent is health as a share of maxHealth, 0 to 100.
func Percent(health, maxHealth int) int {
	if maxHealth <= 0 {
		return 0
	}
	pct := health * 100 / maxHealth

	// Clamp to [0, 100]
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	return pct
}

func BandFor(percent int) Band {
	switch {
	case percent >= 80:
		return BandExcellent
	case percent >= 60:
		return BandGood
	case percent >= 40:
		return BandFair
	case percent >= 20:
		return BandPoor
	default:
		return BandCritical
	}
}

// Bar renders percent as a fixed-width bar, e.g. [#####-----].
func Bar(percent, width int) string {
	if width <= 0 {
		return "[]"
	}
	filled := Percent(percent, 100) * width / 100
	bar := make([]byte, 0, width+2)
	bar = append(bar, '[')
	for i := 0; i < width; i++ {
		if i < filled {
			bar = append(bar, '#')
		} else {
			bar = append(bar, '-')
		}
	}
	return string(append(bar, ']'))
}
