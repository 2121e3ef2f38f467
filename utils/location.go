package utils

import "time"

// LoadLocation resolves an IANA timezone name, falling back to UTC when the
// name is unknown or the zone database is unavailable.
func LoadLocation(name string) *time.Location {
	if name == "" || name == "UTC" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		if Sugar != nil {
			Sugar.Warnf("unknown timezone %q, falling back to UTC", name)
		}
		return time.UTC
	}
	return loc
}
