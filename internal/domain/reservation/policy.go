package reservation

import (
	"fmt"
	"strings"
)

// BlockingPolicy is the set of statuses whose reservations occupy the calendar.
type BlockingPolicy struct {
	statuses []Status
}

// DefaultBlockingPolicy blocks on every status that is not terminal: a booking
// awaiting payment review still holds its nights.
func DefaultBlockingPolicy() BlockingPolicy {
	return BlockingPolicy{statuses: []Status{StatusPending, StatusPaymentUnderReview, StatusConfirmed}}
}

// NewBlockingPolicy builds a policy from explicit statuses. Terminal statuses
// are rejected since they never hold nights.
func NewBlockingPolicy(statuses []Status) (BlockingPolicy, error) {
	if len(statuses) == 0 {
		return BlockingPolicy{}, fmt.Errorf("blocking policy needs at least one status")
	}
	seen := make(map[Status]bool, len(statuses))
	out := make([]Status, 0, len(statuses))
	for _, s := range statuses {
		if !s.IsValid() {
			return BlockingPolicy{}, fmt.Errorf("unknown status %q in blocking policy", s)
		}
		if s.IsTerminal() {
			return BlockingPolicy{}, fmt.Errorf("terminal status %q cannot block dates", s)
		}
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return BlockingPolicy{statuses: out}, nil
}

// ParseBlockingPolicy reads a comma separated status list; blank means the default.
func ParseBlockingPolicy(raw string) (BlockingPolicy, error) {
	if strings.TrimSpace(raw) == "" {
		return DefaultBlockingPolicy(), nil
	}
	var statuses []Status
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			statuses = append(statuses, Status(part))
		}
	}
	return NewBlockingPolicy(statuses)
}

// Statuses returns a copy of the blocking statuses.
func (p BlockingPolicy) Statuses() []Status {
	out := make([]Status, len(p.statuses))
	copy(out, p.statuses)
	return out
}

// Blocks reports whether a reservation in status s occupies its dates.
func (p BlockingPolicy) Blocks(s Status) bool {
	for _, b := range p.statuses {
		if b == s {
			return true
		}
	}
	return false
}
