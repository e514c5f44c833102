package entities

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"campustix/internal/domain"
)

// LocationTBD is the location given to a suggestion when it is approved.
const LocationTBD = "TBD"

// ApprovalLeadTime is the default delay between approval and the event date.
const ApprovalLeadTime = 7 * 24 * time.Hour

// MaxCapacity is the largest ticket capacity the store can hold.
const MaxCapacity = math.MaxInt32

// MaxPrice bounds ticket prices (exclusive), matching NUMERIC(10,2).
var MaxPrice = decimal.New(1, 8)

// ValidPrice reports whether p is a non-negative amount below MaxPrice with
// at most two decimals.
func ValidPrice(p decimal.Decimal) bool {
	return !p.IsNegative() && p.LessThan(MaxPrice) && p.Equal(p.Round(2))
}

// State is the lifecycle state stored with an event. Past is derived from
// ScheduledAt and is not a State.
type State int

const (
	StateSuggested State = iota + 1
	StateApproved
)

func (s State) String() string {
	switch s {
	case StateSuggested:
		return "suggested"
	case StateApproved:
		return "approved"
	default:
		return "unknown"
	}
}

type Event struct {
	ID           uint
	Title        string
	Description  string
	Category     Category
	DepartmentID uint // 0 = none (suggestions)
	CreatorID    uint
	Capacity     int
	Price        decimal.Decimal
	ScheduledAt  time.Time // zero = not scheduled
	Location     string    // "" = not set
	State        State
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DeriveState returns the state encoded by the schedule and location pair.
// Exactly one of them being set is an error.
func DeriveState(scheduledAt time.Time, location string) (State, error) {
	switch {
	case scheduledAt.IsZero() && location == "":
		return StateSuggested, nil
	case !scheduledAt.IsZero() && location != "":
		return StateApproved, nil
	default:
		return 0, domain.ErrInconsistentState
	}
}

// Validate checks that State agrees with ScheduledAt and Location. It must
// pass before every write.
func (e *Event) Validate() error {
	state, err := DeriveState(e.ScheduledAt, e.Location)
	if err != nil {
		return err
	}
	if state != e.State {
		return domain.ErrInconsistentState
	}
	if e.Capacity < 0 || e.Capacity > MaxCapacity {
		return domain.ErrInvalidCapacity
	}
	if !ValidPrice(e.Price) {
		return domain.ErrInvalidPrice
	}
	return nil
}

func (e *Event) IsSuggested() bool { return e.State == StateSuggested }

func (e *Event) IsApproved() bool { return e.State == StateApproved }

// IsPast reports whether an approved event's date is before now.
func (e *Event) IsPast(now time.Time) bool {
	return e.IsApproved() && e.ScheduledAt.Before(now)
}

func (e *Event) IsFree() bool { return e.Price.IsZero() }

// Approve moves a suggestion to the approved state with the default
// schedule and location.
func (e *Event) Approve(now time.Time) error {
	if !e.IsSuggested() {
		return domain.ErrEventNotSuggested
	}
	e.ScheduledAt = now.Add(ApprovalLeadTime)
	e.Location = LocationTBD
	e.State = StateApproved
	return nil
}

// Remaining returns capacity minus issued, floored at zero.
func Remaining(capacity int, issued int64) int {
	left := int64(capacity) - issued
	if left < 0 {
		return 0
	}
	return int(left)
}
