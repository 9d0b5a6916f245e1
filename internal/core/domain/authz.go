package domain

// Decision is the outcome of a capability query against a team. When access is
// denied, Reason carries a human-readable explanation suitable for the caller.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// Allow is the affirmative decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny builds a negative decision with the given reason.
func Deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}
