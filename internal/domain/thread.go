package domain

import "time"

// ThreadStatus enumerates thread states. Any status may move to any other.
type ThreadStatus string

const (
	ThreadStatusOpen             ThreadStatus = "open"
	ThreadStatusInProgress       ThreadStatus = "in_progress"
	ThreadStatusAwaitingResponse ThreadStatus = "awaiting_response"
	ThreadStatusResolved         ThreadStatus = "resolved"
)

// Valid reports whether s is a known status.
func (s ThreadStatus) Valid() bool {
	switch s {
	case ThreadStatusOpen, ThreadStatusInProgress, ThreadStatusAwaitingResponse, ThreadStatusResolved:
		return true
	}
	return false
}

// Open reports whether the status counts towards a partner's open threads.
func (s ThreadStatus) Open() bool {
	return s != ThreadStatusResolved
}

// ThreadVisibility classifies who has to look at a thread.
type ThreadVisibility string

const (
	VisibilityOwned          ThreadVisibility = "owned"
	VisibilityActionRequired ThreadVisibility = "action_required"
	VisibilityFYI            ThreadVisibility = "fyi"
)

// Visibilities lists visibility buckets in display order.
var Visibilities = []ThreadVisibility{VisibilityOwned, VisibilityActionRequired, VisibilityFYI}

// Valid reports whether v is a known visibility.
func (v ThreadVisibility) Valid() bool {
	switch v {
	case VisibilityOwned, VisibilityActionRequired, VisibilityFYI:
		return true
	}
	return false
}

// Priority expresses urgency of threads and focus items.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var priorityRanks = map[Priority]int{
	PriorityLow:    0,
	PriorityMedium: 1,
	PriorityHigh:   2,
	PriorityUrgent: 3,
}

// Rank orders priorities low=0 through urgent=3. Unknown values rank as low.
func (p Priority) Rank() int {
	return priorityRanks[p]
}

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	_, ok := priorityRanks[p]
	return ok
}

// Thread is a longer-lived issue or handoff tracked for a partner.
// LastActivity is a free-text description, not a timestamp.
type Thread struct {
	ID               string
	PartnerID        string
	PartnerName      string
	Title            string
	Status           ThreadStatus
	Owner            Team
	Visibility       ThreadVisibility
	Priority         Priority
	CreatedAt        time.Time
	UpdatedAt        time.Time
	InteractionCount int
	LastActivity     string
}
