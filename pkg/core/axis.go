package core

import "strings"

// AxisType selects the Y-axis scaling mode of the chart
type AxisType string

const (
	AxisNormal     AxisType = "normal"
	AxisLogarithm  AxisType = "logarithm"
	AxisPercentage AxisType = "percentage"
)

// ParseAxisType maps a string to an AxisType, falling back to
// AxisNormal for unknown values
func ParseAxisType(s string) AxisType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(AxisLogarithm), "log":
		return AxisLogarithm
	case string(AxisPercentage), "percent":
		return AxisPercentage
	default:
		return AxisNormal
	}
}
