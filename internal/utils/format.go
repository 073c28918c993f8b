// Package utils holds small presentation helpers shared by the handlers.
package utils

import "fmt"

var byteUnits = [...]string{"KB", "MB", "GB", "TB", "PB", "EB"}

// FormatBytes renders a byte count the way the dashboard displays storage
// usage, e.g. "1.5 GB".
func FormatBytes(n uint64) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	value := float64(n) / 1024
	unit := 0
	for value >= 1024 && unit < len(byteUnits)-1 {
		value /= 1024
		unit++
	}
	return fmt.Sprintf("%.1f %s", value, byteUnits[unit])
}

// FormatFileSize is FormatBytes for the int64 sizes multipart uploads carry.
// Negative sizes render as "0 B".
func FormatFileSize(size int64) string {
	if size < 0 {
		return "0 B"
	}
	return FormatBytes(uint64(size))
}
