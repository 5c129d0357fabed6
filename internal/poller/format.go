package poller

import "strconv"

func formatElapsed(sec float64) string {
	return strconv.FormatFloat(sec, 'f', 1, 64) + "s"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
