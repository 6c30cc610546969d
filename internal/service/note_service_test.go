package service

import (
	"context"
	"strings"
	"testing"

	"syncpad-be/internal/dto"
	"syncpad-be/internal/entity"
	"syncpad-be/internal/repository/contract"
	"syncpad-be/internal/repository/specification"
	"syncpad-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory note repository. Specifications are interpreted by type so the
// service can be exercised without a database.

type fakeNoteRepo struct {
	notes map[uuid.UUID]*entity.Note
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{notes: make(map[uuid.UUID]*entity.Note)}
}

func matchNote(n *entity.Note, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if n.Id != s.ID {
				return false
			}
		case specification.OwnedBy:
			if n.UserId != s.UserID {
				return false
			}
		case specification.ByPublicToken:
			if n.PublicAccessToken != s.Token {
				return false
			}
		case specification.PublicOnly:
			if !n.IsPublic {
				return false
			}
		case specification.EncryptedOnly:
			if !n.Encrypted {
				return false
			}
		}
	}
	return true
}

func (r *fakeNoteRepo) Create(ctx context.Context, note *entity.Note) error {
	cp := *note
	r.notes[note.Id] = &cp
	return nil
}

func (r *fakeNoteRepo) Update(ctx context.Context, note *entity.Note) error {
	cp := *note
	r.notes[note.Id] = &cp
	return nil
}

func (r *fakeNoteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.notes, id)
	return nil
}

func (r *fakeNoteRepo) DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error {
	for id, n := range r.notes {
		if n.UserId == userId {
			delete(r.notes, id)
		}
	}
	return nil
}

func (r *fakeNoteRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	for _, n := range r.notes {
		if matchNote(n, specs) {
			cp := *n
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeNoteRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	var res []*entity.Note
	for _, n := range r.notes {
		if matchNote(n, specs) {
			cp := *n
			res = append(res, &cp)
		}
	}
	return res, nil
}

func (r *fakeNoteRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	notes, _ := r.FindAll(ctx, specs...)
	return int64(len(notes)), nil
}

func (r *fakeNoteRepo) TokenExists(ctx context.Context, token string) (bool, error) {
	for _, n := range r.notes {
		if n.PublicAccessToken == token {
			return true, nil
		}
	}
	return false, nil
}

type fakeUow struct {
	noteRepo *fakeNoteRepo
	userRepo *fakeUserRepo
	miniRepo *fakeMiniNoteRepo
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository { return u.userRepo }
func (u *fakeUow) NoteRepository() contract.NoteRepository { return u.noteRepo }
func (u *fakeUow) MiniNoteRepository() contract.MiniNoteRepository {
	return u.miniRepo
}
func (u *fakeUow) StorageUsageRepository() contract.StorageUsageRepository {
	return nil
}

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func newNoteServiceForTest() (INoteService, *fakeNoteRepo) {
	repo := newFakeNoteRepo()
	factory := &fakeFactory{uow: &fakeUow{noteRepo: repo, userRepo: newFakeUserRepo()}}
	return NewNoteService(factory, nil, nil), repo
}

func seedNote(repo *fakeNoteRepo, owner uuid.UUID, mutate func(*entity.Note)) *entity.Note {
	n := &entity.Note{
		Id:      uuid.New(),
		UserId:  owner,
		Title:   "Meeting notes",
		Content: "agenda items",
	}
	if mutate != nil {
		mutate(n)
	}
	repo.notes[n.Id] = n
	return n
}

func TestCreateRejectsShortPasscode(t *testing.T) {
	svc, _ := newNoteServiceForTest()

	_, err := svc.Create(context.Background(), uuid.New(), &dto.CreateNoteRequest{
		Title:     "secret",
		Encrypted: true,
		Passcode:  "123",
	})
	assert.ErrorIs(t, err, ErrPasscodeTooShort)
}

func TestCreateDefaultsTitle(t *testing.T) {
	svc, repo := newNoteServiceForTest()

	res, err := svc.Create(context.Background(), uuid.New(), &dto.CreateNoteRequest{Content: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "Untitled Note", repo.notes[res.Id].Title)
}

func TestShowOwnerBypassesPasscode(t *testing.T) {
	svc, repo := newNoteServiceForTest()
	owner := uuid.New()
	n := seedNote(repo, owner, func(n *entity.Note) {
		n.Encrypted = true
		n.Passcode = "1234"
	})

	res, err := svc.Show(context.Background(), owner, n.Id, "")
	require.NoError(t, err)
	assert.True(t, res.IsOwner)
	assert.True(t, res.CanEdit)
	assert.False(t, res.PasscodeRequired)
	assert.Equal(t, "agenda items", res.Content)
}

func TestShowPrivateNoteDeniedToOthers(t *testing.T) {
	svc, repo := newNoteServiceForTest()
	n := seedNote(repo, uuid.New(), nil)

	_, err := svc.Show(context.Background(), uuid.New(), n.Id, "")
	assert.ErrorIs(t, err, ErrNoteAccessDenied)
}

func TestShowEncryptedSharedNoteWithoutPasscode(t *testing.T) {
	svc, repo := newNoteServiceForTest()
	n := seedNote(repo, uuid.New(), func(n *entity.Note) {
		n.Encrypted = true
		n.Passcode = "1234"
		n.IsPublic = true
		n.PublicAccessToken = "share-1-abcd"
	})

	res, err := svc.Show(context.Background(), uuid.New(), n.Id, "9999")
	require.NoError(t, err)
	assert.True(t, res.PasscodeRequired)
	assert.NotEqual(t, "agenda items", res.Content)
	assert.False(t, res.CanEdit)
}

func TestShowSharedNoteEditDelegation(t *testing.T) {
	svc, repo := newNoteServiceForTest()
	n := seedNote(repo, uuid.New(), func(n *entity.Note) {
		n.IsPublic = true
		n.PublicAccessToken = "share-2-abcd"
		n.EditPermissions = true
	})

	res, err := svc.Show(context.Background(), uuid.New(), n.Id, "")
	require.NoError(t, err)
	assert.True(t, res.CanEdit)

	// DisableEdit overrides the delegation.
	n.DisableEdit = true
	res, err = svc.Show(context.Background(), uuid.New(), n.Id, "")
	require.NoError(t, err)
	assert.False(t, res.CanEdit)
	assert.Equal(t, "agenda items", res.Content)
}

func TestUpdateRejectedForViewOnlyVisitor(t *testing.T) {
	svc, repo := newNoteServiceForTest()
	n := seedNote(repo, uuid.New(), func(n *entity.Note) {
		n.IsPublic = true
		n.PublicAccessToken = "share-3-abcd"
	})

	_, err := svc.Update(context.Background(), uuid.New(), &dto.UpdateNoteRequest{
		Id:      n.Id,
		Content: "vandalism",
	})
	assert.ErrorIs(t, err, ErrNoteAccessDenied)
	assert.Equal(t, "agenda items", repo.notes[n.Id].Content)
}

func TestUpdateAllowedForDelegatedEditor(t *testing.T) {
	svc, repo := newNoteServiceForTest()
	n := seedNote(repo, uuid.New(), func(n *entity.Note) {
		n.IsPublic = true
		n.PublicAccessToken = "share-4-abcd"
		n.EditPermissions = true
	})

	_, err := svc.Update(context.Background(), uuid.New(), &dto.UpdateNoteRequest{
		Id:      n.Id,
		Content: "collaborative edit",
	})
	require.NoError(t, err)
	assert.Equal(t, "collaborative edit", repo.notes[n.Id].Content)
	assert.NotNil(t, repo.notes[n.Id].UpdatedAt)
}

func TestEnableSharingIssuesToken(t *testing.T) {
	svc, repo := newNoteServiceForTest()
	owner := uuid.New()
	n := seedNote(repo, owner, nil)

	res, err := svc.EnableSharing(context.Background(), owner, n.Id)
	require.NoError(t, err)
	assert.True(t, res.IsPublic)

	stored := repo.notes[n.Id]
	assert.True(t, stored.IsPublic)
	assert.True(t, strings.HasPrefix(stored.PublicAccessToken, "share-"))
	assert.Equal(t, "/shared/"+stored.PublicAccessToken, res.SharePath)

	// Enabling again keeps the existing token stable.
	res2, err := svc.EnableSharing(context.Background(), owner, n.Id)
	require.NoError(t, err)
	assert.Equal(t, res.SharePath, res2.SharePath)
}

func TestDisableSharingRetiresToken(t *testing.T) {
	svc, repo := newNoteServiceForTest()
	owner := uuid.New()
	n := seedNote(repo, owner, nil)

	first, err := svc.EnableSharing(context.Background(), owner, n.Id)
	require.NoError(t, err)

	_, err = svc.DisableSharing(context.Background(), owner, n.Id)
	require.NoError(t, err)
	assert.False(t, repo.notes[n.Id].IsPublic)
	assert.Empty(t, repo.notes[n.Id].PublicAccessToken)

	// Re-enabling issues a fresh token; the old link stays dead.
	second, err := svc.EnableSharing(context.Background(), owner, n.Id)
	require.NoError(t, err)
	assert.NotEqual(t, first.SharePath, second.SharePath)
}

func TestSharingIsOwnerOnly(t *testing.T) {
	svc, repo := newNoteServiceForTest()
	n := seedNote(repo, uuid.New(), nil)

	res, err := svc.EnableSharing(context.Background(), uuid.New(), n.Id)
	require.NoError(t, err)
	assert.Nil(t, res) // Treated as not found for non-owners
	assert.False(t, repo.notes[n.Id].IsPublic)
}

func TestShowSharedAnonymous(t *testing.T) {
	svc, repo := newNoteServiceForTest()
	owner := uuid.New()
	n := seedNote(repo, owner, nil)

	_, err := svc.EnableSharing(context.Background(), owner, n.Id)
	require.NoError(t, err)
	token := repo.notes[n.Id].PublicAccessToken

	res, err := svc.ShowShared(context.Background(), uuid.Nil, token, "")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "agenda items", res.Content)
	assert.False(t, res.CanEdit)

	// Unknown token resolves to nothing.
	missing, err := svc.ShowShared(context.Background(), uuid.Nil, "share-0-dead", "")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestShowSharedAfterDisableIsGone(t *testing.T) {
	svc, repo := newNoteServiceForTest()
	owner := uuid.New()
	n := seedNote(repo, owner, nil)

	_, err := svc.EnableSharing(context.Background(), owner, n.Id)
	require.NoError(t, err)
	token := repo.notes[n.Id].PublicAccessToken

	_, err = svc.DisableSharing(context.Background(), owner, n.Id)
	require.NoError(t, err)

	res, err := svc.ShowShared(context.Background(), uuid.Nil, token, "")
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestDeleteScopedToOwner(t *testing.T) {
	svc, repo := newNoteServiceForTest()
	owner := uuid.New()
	n := seedNote(repo, owner, nil)

	deleted, err := svc.Delete(context.Background(), uuid.New(), n.Id)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Contains(t, repo.notes, n.Id)

	deleted, err = svc.Delete(context.Background(), owner, n.Id)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.NotContains(t, repo.notes, n.Id)
}

func TestDeleteUnknownNoteReportsNotFound(t *testing.T) {
	svc, _ := newNoteServiceForTest()

	deleted, err := svc.Delete(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestUpdateSettingsClearsPasscodeWhenDecrypted(t *testing.T) {
	svc, repo := newNoteServiceForTest()
	owner := uuid.New()
	n := seedNote(repo, owner, func(n *entity.Note) {
		n.Encrypted = true
		n.Passcode = "1234"
	})

	off := false
	_, err := svc.UpdateSettings(context.Background(), owner, &dto.UpdateNoteSettingsRequest{
		Id:        n.Id,
		Encrypted: &off,
	})
	require.NoError(t, err)
	assert.False(t, repo.notes[n.Id].Encrypted)
	assert.Empty(t, repo.notes[n.Id].Passcode)
}

func TestUpdateSettingsRequiresPasscodeWhenEncrypting(t *testing.T) {
	svc, repo := newNoteServiceForTest()
	owner := uuid.New()
	n := seedNote(repo, owner, nil)

	on := true
	_, err := svc.UpdateSettings(context.Background(), owner, &dto.UpdateNoteSettingsRequest{
		Id:        n.Id,
		Encrypted: &on,
	})
	assert.ErrorIs(t, err, ErrPasscodeTooShort)

	passcode := "4321"
	_, err = svc.UpdateSettings(context.Background(), owner, &dto.UpdateNoteSettingsRequest{
		Id:        n.Id,
		Encrypted: &on,
		Passcode:  &passcode,
	})
	require.NoError(t, err)
	assert.True(t, repo.notes[n.Id].Encrypted)
	assert.Equal(t, "4321", repo.notes[n.Id].Passcode)
}
