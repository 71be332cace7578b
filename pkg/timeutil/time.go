// Package timeutil provides timestamp helpers shared by the storage engine.
package timeutil

import "time"

// Timestamp returns the current time in ISO 8601 format
// (YYYY-MM-DDTHH:mm:ss.sssZ), always in UTC.
func Timestamp() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}
