package series

import (
	"strings"
	"time"

	str2duration "github.com/xhit/go-str2duration/v2"
)

// Pattern describes the candle scenario selected by a time range:
// how many points to emit, how far apart they are, and how volatile
// and trended the walk is.
type Pattern struct {
	Points     int
	Interval   time.Duration
	Volatility float64
	Trend      float64
}

// patterns maps the supported range selectors to their scenarios.
var patterns = map[string]Pattern{
	"1H": {Points: 60, Interval: time.Minute, Volatility: 0.004, Trend: 0.010},
	"1D": {Points: 96, Interval: 15 * time.Minute, Volatility: 0.010, Trend: 0.030},
	"1W": {Points: 168, Interval: time.Hour, Volatility: 0.018, Trend: 0.060},
	"1M": {Points: 120, Interval: 6 * time.Hour, Volatility: 0.025, Trend: 0.120},
	"1Y": {Points: 365, Interval: 24 * time.Hour, Volatility: 0.035, Trend: 0.400},
}

// defaultPattern is used when a range selector is not recognized.
// Falling back instead of erroring is a documented policy: a chart with
// default-shaped data beats a chart that refuses to render.
var defaultPattern = patterns["1D"]

// LookupPattern resolves a range selector to a pattern. Unknown
// selectors are first tried as a plain duration string ("36h", "15d");
// if that fails too, the default pattern is returned.
func LookupPattern(timeRange string) Pattern {
	key := strings.ToUpper(strings.TrimSpace(timeRange))
	if p, ok := patterns[key]; ok {
		return p
	}
	if d, err := str2duration.ParseDuration(strings.ToLower(key)); err == nil && d > 0 {
		return patternFromDuration(d)
	}
	return defaultPattern
}

// patternFromDuration derives a scenario for an arbitrary span: around
// a hundred points, with volatility and trend scaled between the 1H
// and 1Y presets by span length.
func patternFromDuration(d time.Duration) Pattern {
	const targetPoints = 96

	interval := d / targetPoints
	if interval < time.Minute {
		interval = time.Minute
	}

	frac := float64(d) / float64(365*24*time.Hour)
	if frac > 1 {
		frac = 1
	}

	return Pattern{
		Points:     targetPoints,
		Interval:   interval,
		Volatility: 0.004 + frac*(0.035-0.004),
		Trend:      0.010 + frac*(0.400-0.010),
	}
}
