package utils

import "time"

// TimestampedFilename builds a filename of the form
// <prefix>YYYYMMDDHHMMSS<ext> using the local time of t
func TimestampedFilename(prefix, ext string, t time.Time) string {
	return prefix + t.Format("20060102150405") + ext
}
