package models

// Status is the lifecycle status shared by orders and station tickets.
type Status string

const (
	StatusPending          Status = "PENDING"
	StatusInProgress       Status = "IN_PROGRESS"
	StatusReady            Status = "READY"
	StatusServed           Status = "SERVED"
	StatusPaymentRequested Status = "PAYMENT_REQUESTED"
	StatusPaid             Status = "PAID"
	StatusCancelled        Status = "CANCELLED"
)

var statusRank = map[Status]int{
	StatusPending:          0,
	StatusInProgress:       1,
	StatusReady:            2,
	StatusServed:           3,
	StatusPaymentRequested: 4,
	StatusPaid:             5,
}

// ParseStatus validates a raw status value.
func ParseStatus(raw string) (Status, bool) {
	s := Status(raw)
	if s == StatusCancelled {
		return s, true
	}
	_, ok := statusRank[s]
	return s, ok
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == StatusPaid || s == StatusCancelled
}

// IsActive reports whether an order in this status still belongs to the
// table's active set.
func (s Status) IsActive() bool {
	return !s.IsTerminal()
}

// CanTransitionTo reports whether moving from s to next is a valid forward
// transition. Cancellation is allowed from any pre-PAID state. Regressions
// are rejected; only the reconciler may downgrade a composite status, and it
// bypasses this check by construction.
func (s Status) CanTransitionTo(next Status) bool {
	if s.IsTerminal() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to > from
}

// ActiveStatuses is the status set that counts as "active" for table and
// staff views.
func ActiveStatuses() []Status {
	return []Status{
		StatusPending,
		StatusInProgress,
		StatusReady,
		StatusServed,
		StatusPaymentRequested,
	}
}
