package utils

import "strings"

// CleanStatsdMetrics strips characters statsd treats as separators
func CleanStatsdMetrics(k string) string {
	return strings.ReplaceAll(k, ".", "-")
}
