package booking

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no transition leaves the status.
func (s Status) IsTerminal() bool {
	return s == StatusRejected || s == StatusCancelled
}

// transitions is the closed transition table. Nothing transitions back
// into pending, and approved bookings are not tenant-cancellable.
var transitions = map[Status][]Status{
	StatusPending:   {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved:  {},
	StatusRejected:  {},
	StatusCancelled: {},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Decision is a landlord's verdict on a pending booking.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

func (d Decision) IsValid() bool {
	return d == DecisionApprove || d == DecisionReject
}

func (d Decision) Status() Status {
	if d == DecisionApprove {
		return StatusApproved
	}
	return StatusRejected
}

func NewDecision(s string) (Decision, error) {
	d := Decision(s)
	if !d.IsValid() {
		return "", ErrInvalidDecision
	}
	return d, nil
}
