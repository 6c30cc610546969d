package entity

import (
	"time"

	"github.com/google/uuid"
)

// Note is the persisted note record. UserId is the owning user and is the
// exclusive authority for edits, deletion and settings changes.
type Note struct {
	Id      uuid.UUID
	UserId  uuid.UUID
	Title   string
	Content string

	// Encryption gate: when Encrypted is set, Passcode holds the plaintext
	// passcode non-owners must supply to view the content.
	Encrypted bool
	Passcode  string

	// Public sharing: PublicAccessToken is non-empty iff IsPublic is true.
	// Tokens are globally unique across notes at issuance time.
	IsPublic          bool
	PublicAccessToken string

	// Delegated edit: non-owners with view access may edit when
	// EditPermissions is set, unless DisableEdit overrides it.
	EditPermissions bool
	DisableEdit     bool

	CreatedAt time.Time
	UpdatedAt *time.Time
}
