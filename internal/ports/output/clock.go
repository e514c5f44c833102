package output

import "time"

// Clock is the source of "now" for every future/past comparison.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}
