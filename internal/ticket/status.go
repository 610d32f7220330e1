// Package ticket implements the ticket lifecycle: the status and role
// enums, the transition table, and the controller that applies changes
// through the backend.
package ticket

import "fmt"

// Status is a ticket lifecycle status. The set is closed; values outside
// it are rejected at parse time.
type Status string

const (
	StatusNew        Status = "Novo"
	StatusInProgress Status = "Em Andamento"
	StatusResolved   Status = "Resolvido"
	StatusClosed     Status = "Fechado"
)

// Statuses returns all lifecycle statuses in order.
func Statuses() []Status {
	return []Status{StatusNew, StatusInProgress, StatusResolved, StatusClosed}
}

// ParseStatus validates a wire-format status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusNew, StatusInProgress, StatusResolved, StatusClosed:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown ticket status %q", s)
}

// Priority is a ticket priority. The backend stores the accent-free
// "Media"; the views may render it with the accent but never send it.
type Priority string

const (
	PriorityLow    Priority = "Baixa"
	PriorityMedium Priority = "Media"
	PriorityHigh   Priority = "Alta"
)

// Priorities returns all priorities in ascending order.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// ParsePriority validates a wire-format priority string.
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s), nil
	}
	return "", fmt.Errorf("unknown priority %q (valid: Baixa, Media, Alta)", s)
}

// Role is a user role.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleTech  Role = "Tech"
	RoleUser  Role = "User"
)

// Roles returns all roles.
func Roles() []Role {
	return []Role{RoleAdmin, RoleTech, RoleUser}
}

// ParseRole validates a wire-format role string.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleTech, RoleUser:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// IsStaff reports whether the role is Admin or Tech.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleTech
}

// transition is one edge of the lifecycle graph.
type transition struct {
	from, to  Status
	staffOnly bool
}

// transitions is the full lifecycle. Fechado is terminal: no edge leaves
// it. Closing a resolved ticket is open to every role so requesters can
// confirm their own fix; everything else is staff work.
var transitions = []transition{
	{from: StatusNew, to: StatusInProgress, staffOnly: true},
	{from: StatusNew, to: StatusResolved, staffOnly: true},
	{from: StatusInProgress, to: StatusResolved, staffOnly: true},
	{from: StatusResolved, to: StatusClosed, staffOnly: false},
	{from: StatusResolved, to: StatusInProgress, staffOnly: true},
}

// CanTransition reports whether role may move a ticket from one status to
// another. Unknown statuses and self-transitions are always rejected.
func CanTransition(role Role, from, to Status) bool {
	for _, t := range transitions {
		if t.from == from && t.to == to {
			return !t.staffOnly || role.IsStaff()
		}
	}
	return false
}

// AvailableTransitions returns the target statuses role may move a ticket
// to from the given status, in table order. The views build their action
// buttons from this.
func AvailableTransitions(role Role, from Status) []Status {
	var out []Status
	for _, t := range transitions {
		if t.from == from && (!t.staffOnly || role.IsStaff()) {
			out = append(out, t.to)
		}
	}
	return out
}

// CanAssign reports whether role may transfer a ticket in the given
// status. Transfer is staff-only and a closed ticket stays with whoever
// closed it.
func CanAssign(role Role, status Status) bool {
	return role.IsStaff() && status != StatusClosed
}
