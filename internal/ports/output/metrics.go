package output

// Metrics records workflow outcomes.
type Metrics interface {
	BookingAttempt(outcome string)
	Transition(name string)
}
