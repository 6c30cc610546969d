package access

import "github.com/google/uuid"

// Outcome is the terminal result of evaluating a note request.
// Callers are expected to switch over every variant.
type Outcome int

const (
	// Denied means the requester has no access at all.
	Denied Outcome = iota
	// PasscodeRequired means the note is visible but its content must be
	// withheld until the requester supplies the matching passcode.
	PasscodeRequired
	// ViewOnly grants read access without edit rights.
	ViewOnly
	// ViewAndEdit grants full read and write access.
	ViewAndEdit
)

func (o Outcome) String() string {
	switch o {
	case Denied:
		return "denied"
	case PasscodeRequired:
		return "passcode_required"
	case ViewOnly:
		return "view_only"
	case ViewAndEdit:
		return "view_and_edit"
	default:
		return "unknown"
	}
}

// CanView reports whether the outcome allows reading the real content.
func (o Outcome) CanView() bool {
	return o == ViewOnly || o == ViewAndEdit
}

// CanEdit reports whether the outcome allows mutating the note.
func (o Outcome) CanEdit() bool {
	return o == ViewAndEdit
}

// Snapshot is the subset of note state the decision depends on.
// It is copied out of the storage record so the evaluation stays a pure
// function of its inputs.
type Snapshot struct {
	OwnerId         uuid.UUID
	Encrypted       bool
	Passcode        string
	IsPublic        bool
	EditPermissions bool
	DisableEdit     bool
}

// Evaluate decides view/edit access for a single request.
// requesterId is uuid.Nil for anonymous requests (public share links).
//
// Precedence: the owner check short-circuits everything, including the
// passcode gate. The owner always sees real content.
func Evaluate(note Snapshot, requesterId uuid.UUID, passcode string) Outcome {
	if requesterId != uuid.Nil && requesterId == note.OwnerId {
		return ViewAndEdit
	}
	if !note.IsPublic {
		return Denied
	}
	// Exact string equality. An empty supplied passcode only matches an
	// empty stored one, which creation validation rules out for
	// encrypted notes.
	if note.Encrypted && passcode != note.Passcode {
		return PasscodeRequired
	}
	if note.EditPermissions && !note.DisableEdit {
		return ViewAndEdit
	}
	return ViewOnly
}
