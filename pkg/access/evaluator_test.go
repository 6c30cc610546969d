package access

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestOwnerAlwaysHasFullAccess(t *testing.T) {
	owner := uuid.New()

	// Every flag combination, including the hostile ones.
	for _, note := range []Snapshot{
		{OwnerId: owner},
		{OwnerId: owner, Encrypted: true, Passcode: "1234"},
		{OwnerId: owner, IsPublic: true, Encrypted: true, Passcode: "1234"},
		{OwnerId: owner, DisableEdit: true},
		{OwnerId: owner, IsPublic: true, EditPermissions: false, DisableEdit: true},
	} {
		outcome := Evaluate(note, owner, "")
		assert.Equal(t, ViewAndEdit, outcome)
		assert.True(t, outcome.CanView())
		assert.True(t, outcome.CanEdit())
	}
}

func TestPrivateNoteDeniedForOthers(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	note := Snapshot{OwnerId: owner, IsPublic: false, Encrypted: true, Passcode: "1234"}

	// Even the correct passcode does not help on a private note.
	assert.Equal(t, Denied, Evaluate(note, stranger, "1234"))
	assert.Equal(t, Denied, Evaluate(note, stranger, ""))
	assert.Equal(t, Denied, Evaluate(note, uuid.Nil, "1234"))
}

func TestEncryptedPublicNoteRequiresPasscode(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	note := Snapshot{OwnerId: owner, IsPublic: true, Encrypted: true, Passcode: "1234"}

	assert.Equal(t, PasscodeRequired, Evaluate(note, stranger, ""))
	assert.Equal(t, PasscodeRequired, Evaluate(note, stranger, "0000"))
	assert.Equal(t, PasscodeRequired, Evaluate(note, uuid.Nil, "12345"))

	assert.Equal(t, ViewOnly, Evaluate(note, stranger, "1234"))

	note.EditPermissions = true
	assert.Equal(t, ViewAndEdit, Evaluate(note, stranger, "1234"))

	note.DisableEdit = true
	assert.Equal(t, ViewOnly, Evaluate(note, stranger, "1234"))
}

func TestUnencryptedPublicNoteNeverAsksForPasscode(t *testing.T) {
	owner := uuid.New()
	note := Snapshot{OwnerId: owner, IsPublic: true}

	for _, passcode := range []string{"", "whatever", "1234"} {
		outcome := Evaluate(note, uuid.New(), passcode)
		assert.NotEqual(t, PasscodeRequired, outcome)
		assert.True(t, outcome.CanView())
	}
}

func TestDisableEditOverridesEditPermissions(t *testing.T) {
	note := Snapshot{
		OwnerId:         uuid.New(),
		IsPublic:        true,
		EditPermissions: true,
		DisableEdit:     true,
	}

	outcome := Evaluate(note, uuid.New(), "")
	assert.Equal(t, ViewOnly, outcome)
	assert.False(t, outcome.CanEdit())
}

func TestEvaluateIsDeterministic(t *testing.T) {
	note := Snapshot{
		OwnerId:   uuid.New(),
		IsPublic:  true,
		Encrypted: true,
		Passcode:  "9876",
	}
	requester := uuid.New()

	first := Evaluate(note, requester, "9876")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Evaluate(note, requester, "9876"))
	}
}

func TestAnonymousRequesterOnPublicNote(t *testing.T) {
	note := Snapshot{OwnerId: uuid.New(), IsPublic: true, EditPermissions: true}

	// uuid.Nil is never treated as an owner, even if OwnerId were zeroed.
	assert.Equal(t, ViewAndEdit, Evaluate(note, uuid.Nil, ""))

	zeroOwner := Snapshot{OwnerId: uuid.Nil, IsPublic: false}
	assert.Equal(t, Denied, Evaluate(zeroOwner, uuid.Nil, ""))
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "denied", Denied.String())
	assert.Equal(t, "passcode_required", PasscodeRequired.String())
	assert.Equal(t, "view_only", ViewOnly.String())
	assert.Equal(t, "view_and_edit", ViewAndEdit.String())
}
