// Package present derives the display hints the dashboard renders next to
// scores: trend arrows, colour bands, percentages and placeholders.
package present

import (
	"fmt"
	"strconv"
	"strings"
)

// NotAvailable stands in for absent optional values.
const NotAvailable = "N/A"

type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
	Flat Direction = "flat"
)

// Indicator is how a trend is drawn. A rising risk score is bad news.
type Indicator struct {
	Direction Direction `json:"direction"`
	Color     string    `json:"color"`
}

func TrendIndicator(direction string) Indicator {
	switch strings.ToLower(strings.TrimSpace(direction)) {
	case "increasing":
		return Indicator{Direction: Up, Color: "error"}
	case "decreasing":
		return Indicator{Direction: Down, Color: "success"}
	default:
		return Indicator{Direction: Flat, Color: "action"}
	}
}

type Band string

const (
	BandHigh   Band = "high"
	BandMedium Band = "medium"
	BandLow    Band = "low"
)

// ScoreBand applies to the overall score and to each category score alike.
func ScoreBand(score float64) Band {
	switch {
	case score > 70:
		return BandHigh
	case score > 50:
		return BandMedium
	default:
		return BandLow
	}
}

// BandColor is the palette key the front end uses for a band.
func BandColor(b Band) string {
	switch b {
	case BandHigh:
		return "error.main"
	case BandMedium:
		return "warning.main"
	default:
		return "success.main"
	}
}

// Percent renders 12.5 as "12.5%" and 4 as "4%".
func Percent(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64) + "%"
}

// TrendText renders "increasing by 5%", or N/A without a direction.
func TrendText(direction string, pct float64) string {
	if strings.TrimSpace(direction) == "" {
		return NotAvailable
	}
	return fmt.Sprintf("%s by %s", direction, Percent(pct))
}

func OrNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return s
}

func SeverityColor(severity string) string {
	switch strings.ToLower(severity) {
	case "critical":
		return "error"
	case "high":
		return "warning"
	case "medium":
		return "info"
	case "low":
		return "success"
	default:
		return "default"
	}
}
