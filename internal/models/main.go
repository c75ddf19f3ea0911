// Package models defines the core data structures for cupboards, items,
// audit entries, and actor identities.
package models

// TimeLayout is the timestamp format used in both persisted documents
// and notification mails.
const TimeLayout = "2006-01-02 15:04:05"

// Action identifies the kind of state transition applied to an item.
type Action string

const (
	// ActionLocked means the item was returned and is available again.
	ActionLocked Action = "locked"
	// ActionUnlocked means the item was borrowed.
	ActionUnlocked Action = "unlocked"
)

// Valid reports whether a is one of the known actions.
func (a Action) Valid() bool {
	return a == ActionLocked || a == ActionUnlocked
}

// Cupboard is a named physical storage unit holding trackable items.
type Cupboard struct {
	// ID is the unique positive identifier of the cupboard.
	ID int `json:"id"`
	// Name is the display name, e.g. "Cupboard 1 - Measurement Equipment".
	Name string `json:"name"`
	// Items holds the cupboard's items in stored order.
	Items []Item `json:"items"`
}

// Item is a trackable piece of hardware with a binary locked/unlocked
// (available/borrowed) state.
//
// Invariant: IsLocked == true implies both BorrowedBy and BorrowedAt are
// nil; IsLocked == false implies both are set.
type Item struct {
	// ID is unique within the owning cupboard, format "C<cupboard>_<seq>"
	// with a three-digit sequence, e.g. "C1_004".
	ID string `json:"id"`
	// Name is the display name of the hardware item.
	Name string `json:"name"`
	// IsLocked is true while the item sits in its cupboard.
	IsLocked bool `json:"is_locked"`
	// BorrowedBy is the NT ID of the current borrower, nil when locked.
	BorrowedBy *string `json:"borrowed_by"`
	// BorrowedAt is the borrow timestamp in TimeLayout, nil when locked.
	BorrowedAt *string `json:"borrowed_at"`
}

// AuditEntry is one immutable record of a borrow or return event.
type AuditEntry struct {
	Timestamp    string `json:"timestamp"`
	Action       Action `json:"action"`
	ItemName     string `json:"item_name"`
	CupboardName string `json:"cupboard_name"`
	NTID         string `json:"nt_id"`
}

// ToggleResult describes a completed lock toggle.
type ToggleResult struct {
	// Action is ActionLocked for a return, ActionUnlocked for a borrow.
	Action Action
	// ItemName is the display name of the toggled item.
	ItemName string
	// CupboardName is the display name of the owning cupboard.
	CupboardName string
}

// Roles assignable to an authenticated actor.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Identity is the authenticated actor attached to a request.
type Identity struct {
	// NTID is the user identifier, stored uppercased.
	NTID string
	// Role is RoleUser or RoleAdmin.
	Role string
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
