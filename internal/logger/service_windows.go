package logger

// Windows services are detected through the environment only
func isDetached() bool {
	return false
}
