package tz

import (
	"fmt"
	"time"
)

// Clock reads the system time in a fixed location.
type Clock struct {
	loc *time.Location
}

// Load builds a Clock for the IANA zone name ("Asia/Kolkata", "UTC", ...).
func Load(name string) (*Clock, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("tz: load %s: %w", name, err)
	}
	return &Clock{loc: loc}, nil
}

func (c *Clock) Now() time.Time { return time.Now().In(c.loc) }

func (c *Clock) Location() *time.Location { return c.loc }

// Fixed is a Clock frozen at one instant, for tests and replays.
type Fixed struct {
	At  time.Time
	Loc *time.Location
}

func (f Fixed) Now() time.Time { return f.At.In(f.Location()) }

func (f Fixed) Location() *time.Location {
	if f.Loc == nil {
		return time.UTC
	}
	return f.Loc
}
