package service

import (
	"context"
	"testing"
	"time"

	"syncpad-be/internal/dto"
	"syncpad-be/internal/entity"
	"syncpad-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMiniNoteRepo struct {
	miniNotes map[uuid.UUID]*entity.MiniNote
}

func newFakeMiniNoteRepo() *fakeMiniNoteRepo {
	return &fakeMiniNoteRepo{miniNotes: make(map[uuid.UUID]*entity.MiniNote)}
}

func matchMiniNote(m *entity.MiniNote, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if m.Id != s.ID {
				return false
			}
		case specification.ByRecipient:
			if m.RecipientId != s.UserID {
				return false
			}
		case specification.BySender:
			if m.SenderId != s.UserID {
				return false
			}
		case specification.UnreadOnly:
			if m.Read {
				return false
			}
		}
	}
	return true
}

func (r *fakeMiniNoteRepo) Create(ctx context.Context, note *entity.MiniNote) error {
	cp := *note
	r.miniNotes[note.Id] = &cp
	return nil
}

func (r *fakeMiniNoteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.miniNotes, id)
	return nil
}

func (r *fakeMiniNoteRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MiniNote, error) {
	for _, m := range r.miniNotes {
		if matchMiniNote(m, specs) {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMiniNoteRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MiniNote, error) {
	var res []*entity.MiniNote
	for _, m := range r.miniNotes {
		if matchMiniNote(m, specs) {
			cp := *m
			res = append(res, &cp)
		}
	}
	return res, nil
}

func (r *fakeMiniNoteRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	notes, _ := r.FindAll(ctx, specs...)
	return int64(len(notes)), nil
}

func (r *fakeMiniNoteRepo) MarkRead(ctx context.Context, id uuid.UUID) error {
	if m, ok := r.miniNotes[id]; ok {
		m.Read = true
	}
	return nil
}

func newMiniNoteServiceForTest() (IMiniNoteService, *fakeUserRepo, *fakeMiniNoteRepo) {
	userRepo := newFakeUserRepo()
	miniRepo := newFakeMiniNoteRepo()
	factory := &fakeFactory{uow: &fakeUow{noteRepo: newFakeNoteRepo(), userRepo: userRepo, miniRepo: miniRepo}}
	return NewMiniNoteService(factory, &fakeMailer{}, nil), userRepo, miniRepo
}

func seedUser(repo *fakeUserRepo, email, name string) *entity.User {
	u := &entity.User{
		Id:        uuid.New(),
		Email:     email,
		FullName:  name,
		Role:      entity.UserRoleUser,
		Status:    entity.UserStatusActive,
		CreatedAt: time.Now(),
	}
	repo.users[u.Id] = u
	return u
}

func TestSendMiniNote(t *testing.T) {
	svc, users, miniNotes := newMiniNoteServiceForTest()
	sender := seedUser(users, "bob@example.com", "Bob")
	recipient := seedUser(users, "carol@example.com", "Carol")

	res, err := svc.Send(context.Background(), sender.Id, &dto.SendMiniNoteRequest{
		RecipientEmail: "carol@example.com",
		Content:        "lunch at noon?",
	})
	require.NoError(t, err)

	stored := miniNotes.miniNotes[res.Id]
	require.NotNil(t, stored)
	assert.Equal(t, recipient.Id, stored.RecipientId)
	assert.Equal(t, sender.Id, stored.SenderId)
	assert.False(t, stored.Read)
}

func TestSendMiniNoteUnknownRecipient(t *testing.T) {
	svc, users, _ := newMiniNoteServiceForTest()
	sender := seedUser(users, "bob@example.com", "Bob")

	_, err := svc.Send(context.Background(), sender.Id, &dto.SendMiniNoteRequest{
		RecipientEmail: "nobody@example.com",
		Content:        "hello?",
	})
	assert.ErrorIs(t, err, ErrRecipientNotFound)
}

func TestSendMiniNoteToSelf(t *testing.T) {
	svc, users, _ := newMiniNoteServiceForTest()
	sender := seedUser(users, "bob@example.com", "Bob")

	_, err := svc.Send(context.Background(), sender.Id, &dto.SendMiniNoteRequest{
		RecipientEmail: "bob@example.com",
		Content:        "note to self",
	})
	assert.ErrorIs(t, err, ErrSelfMiniNote)
}

func TestInboxResolvesSenderNames(t *testing.T) {
	svc, users, _ := newMiniNoteServiceForTest()
	sender := seedUser(users, "bob@example.com", "Bob")
	recipient := seedUser(users, "carol@example.com", "Carol")

	_, err := svc.Send(context.Background(), sender.Id, &dto.SendMiniNoteRequest{
		RecipientEmail: "carol@example.com",
		Content:        "ping",
	})
	require.NoError(t, err)

	inbox, err := svc.Inbox(context.Background(), recipient.Id)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, "Bob", inbox[0].SenderName)
	assert.Equal(t, "ping", inbox[0].Content)

	// The sender has no copy in their own inbox.
	senderInbox, err := svc.Inbox(context.Background(), sender.Id)
	require.NoError(t, err)
	assert.Empty(t, senderInbox)
}

func TestMarkReadScopedToRecipient(t *testing.T) {
	svc, users, miniNotes := newMiniNoteServiceForTest()
	sender := seedUser(users, "bob@example.com", "Bob")
	recipient := seedUser(users, "carol@example.com", "Carol")

	res, err := svc.Send(context.Background(), sender.Id, &dto.SendMiniNoteRequest{
		RecipientEmail: "carol@example.com",
		Content:        "ping",
	})
	require.NoError(t, err)

	// The sender cannot mark it read.
	require.NoError(t, svc.MarkRead(context.Background(), sender.Id, res.Id))
	assert.False(t, miniNotes.miniNotes[res.Id].Read)

	require.NoError(t, svc.MarkRead(context.Background(), recipient.Id, res.Id))
	assert.True(t, miniNotes.miniNotes[res.Id].Read)
}

func TestDeleteMiniNoteScopedToRecipient(t *testing.T) {
	svc, users, miniNotes := newMiniNoteServiceForTest()
	sender := seedUser(users, "bob@example.com", "Bob")
	recipient := seedUser(users, "carol@example.com", "Carol")

	res, err := svc.Send(context.Background(), sender.Id, &dto.SendMiniNoteRequest{
		RecipientEmail: "carol@example.com",
		Content:        "ping",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), sender.Id, res.Id))
	assert.Contains(t, miniNotes.miniNotes, res.Id)

	require.NoError(t, svc.Delete(context.Background(), recipient.Id, res.Id))
	assert.NotContains(t, miniNotes.miniNotes, res.Id)
}
