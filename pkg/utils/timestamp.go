package utils

import "time"

// UnixFloat converts a time to unix seconds with a fractional part, the
// timestamp format used on the wire.
func UnixFloat(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

// NowUnixFloat returns the current wall-clock time as UnixFloat.
func NowUnixFloat() float64 {
	return UnixFloat(time.Now())
}
