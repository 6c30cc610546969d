package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"syncpad-be/internal/dto"
	"syncpad-be/internal/entity"
	"syncpad-be/internal/repository/specification"
	"syncpad-be/internal/repository/unitofwork"
	"syncpad-be/pkg/access"
	"syncpad-be/pkg/events"
	pktNats "syncpad-be/pkg/nats"
	"syncpad-be/pkg/sharing"

	"github.com/google/uuid"
)

// EncryptedContentPlaceholder is what clients see instead of the content of
// an encrypted note until the passcode checks out.
const EncryptedContentPlaceholder = "🔒 This note is encrypted. Enter the passcode to view it."

const defaultNoteTitle = "Untitled Note"

var (
	ErrNoteAccessDenied = errors.New("access denied")
	ErrPasscodeRequired = errors.New("passcode required")
	ErrPasscodeTooShort = errors.New("passcode must be at least 4 characters")
)

type INoteService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.CreateNoteResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.NoteSummary, error)
	Show(ctx context.Context, requesterId uuid.UUID, id uuid.UUID, passcode string) (*dto.ShowNoteResponse, error)
	Update(ctx context.Context, requesterId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.UpdateNoteResponse, error)
	UpdateSettings(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteSettingsRequest) (*dto.UpdateNoteResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) (bool, error)
	EnableSharing(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShareNoteResponse, error)
	DisableSharing(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShareNoteResponse, error)
	ShowShared(ctx context.Context, requesterId uuid.UUID, token string, passcode string) (*dto.SharedNoteResponse, error)
}

type noteService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
) INoteService {
	return &noteService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
	}
}

// accessSnapshot copies the decision-relevant fields out of the record so
// the evaluator stays a pure function of explicit inputs.
func accessSnapshot(n *entity.Note) access.Snapshot {
	return access.Snapshot{
		OwnerId:         n.UserId,
		Encrypted:       n.Encrypted,
		Passcode:        n.Passcode,
		IsPublic:        n.IsPublic,
		EditPermissions: n.EditPermissions,
		DisableEdit:     n.DisableEdit,
	}
}

func validatePasscode(encrypted bool, passcode string) error {
	if encrypted && len(passcode) < 4 {
		return ErrPasscodeTooShort
	}
	return nil
}

func (c *noteService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.CreateNoteResponse, error) {
	if err := validatePasscode(req.Encrypted, req.Passcode); err != nil {
		return nil, err
	}

	title := req.Title
	if title == "" {
		title = defaultNoteTitle
	}

	passcode := ""
	if req.Encrypted {
		passcode = req.Passcode
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	note := entity.Note{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     title,
		Content:   req.Content,
		Encrypted: req.Encrypted,
		Passcode:  passcode,
		CreatedAt: time.Now(),
	}

	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		return nil, err
	}

	c.publishUsageRecalc(ctx, userId)

	return &dto.CreateNoteResponse{
		Id: note.Id,
	}, nil
}

func (c *noteService) List(ctx context.Context, userId uuid.UUID) ([]*dto.NoteSummary, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	summaries := make([]*dto.NoteSummary, 0, len(notes))
	for _, n := range notes {
		summaries = append(summaries, &dto.NoteSummary{
			Id:        n.Id,
			Title:     n.Title,
			Encrypted: n.Encrypted,
			IsPublic:  n.IsPublic,
			CreatedAt: n.CreatedAt,
			UpdatedAt: n.UpdatedAt,
		})
	}
	return summaries, nil
}

func (c *noteService) Show(ctx context.Context, requesterId uuid.UUID, id uuid.UUID, passcode string) (*dto.ShowNoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, nil // Not found
	}

	outcome := access.Evaluate(accessSnapshot(note), requesterId, passcode)

	res := dto.ShowNoteResponse{
		Id:        note.Id,
		Title:     note.Title,
		Encrypted: note.Encrypted,
		IsPublic:  note.IsPublic,
		IsOwner:   requesterId == note.UserId,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}

	switch outcome {
	case access.Denied:
		return nil, ErrNoteAccessDenied
	case access.PasscodeRequired:
		// Success-shaped: the client prompts for the passcode. The real
		// content never leaves the server on this path.
		res.PasscodeRequired = true
		res.Content = EncryptedContentPlaceholder
	case access.ViewOnly, access.ViewAndEdit:
		res.Content = note.Content
		res.CanEdit = outcome.CanEdit()
	}

	if res.IsOwner && note.IsPublic {
		res.SharePath = "/shared/" + note.PublicAccessToken
	}

	return &res, nil
}

func (c *noteService) Update(ctx context.Context, requesterId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.UpdateNoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, nil
	}

	// Non-owner edits go through the same decision table as reads.
	outcome := access.Evaluate(accessSnapshot(note), requesterId, req.Passcode)
	switch outcome {
	case access.PasscodeRequired:
		return nil, ErrPasscodeRequired
	case access.Denied, access.ViewOnly:
		return nil, ErrNoteAccessDenied
	}

	now := time.Now()
	if req.Title != "" {
		note.Title = req.Title
	}
	note.Content = req.Content
	note.UpdatedAt = &now

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}

	// Usage is attributed to the owner, not the editor.
	c.publishUsageRecalc(ctx, note.UserId)

	return &dto.UpdateNoteResponse{
		Id: note.Id,
	}, nil
}

func (c *noteService) UpdateSettings(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteSettingsRequest) (*dto.UpdateNoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	// Settings are owner-only, so scope the lookup to the owner directly.
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, nil
	}

	if req.Title != nil {
		note.Title = *req.Title
		if note.Title == "" {
			note.Title = defaultNoteTitle
		}
	}
	if req.Encrypted != nil {
		note.Encrypted = *req.Encrypted
	}
	if req.Passcode != nil {
		note.Passcode = *req.Passcode
	}
	if note.Encrypted {
		if err := validatePasscode(true, note.Passcode); err != nil {
			return nil, err
		}
	} else {
		note.Passcode = ""
	}
	if req.EditPermissions != nil {
		note.EditPermissions = *req.EditPermissions
	}
	if req.DisableEdit != nil {
		note.DisableEdit = *req.DisableEdit
	}

	now := time.Now()
	note.UpdatedAt = &now

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}

	return &dto.UpdateNoteResponse{
		Id: note.Id,
	}, nil
}

// Delete reports whether a note was removed. An unknown id and a note owned
// by someone else both come back false, so callers cannot probe for the
// existence of other users' notes.
func (c *noteService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) (bool, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return false, err
	}
	if note == nil || note.UserId != userId {
		return false, nil
	}

	if err := uow.NoteRepository().Delete(ctx, id); err != nil {
		return false, err
	}

	c.publishUsageRecalc(ctx, userId)
	return true, nil
}

// EnableSharing issues a share token if the note has none and flips the
// public flag. The uniqueness check and the write share one transaction so
// two racing enables cannot both persist different tokens on this note.
func (c *noteService) EnableSharing(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShareNoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, nil
	}

	if note.PublicAccessToken == "" {
		issuer := sharing.NewIssuer(uow.NoteRepository().TokenExists)
		token, err := issuer.Issue(ctx)
		if err != nil {
			return nil, err
		}
		note.PublicAccessToken = token
	}
	note.IsPublic = true

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	c.publishEvent(ctx, events.TypeNoteShared, map[string]interface{}{
		"note_id": note.Id,
		"user_id": userId,
	})

	return &dto.ShareNoteResponse{
		IsPublic:  true,
		SharePath: "/shared/" + note.PublicAccessToken,
	}, nil
}

// DisableSharing retires the token. Re-enabling later issues a fresh one,
// so a previously shared URL can never silently come back to life.
func (c *noteService) DisableSharing(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShareNoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, nil
	}

	note.IsPublic = false
	note.PublicAccessToken = ""

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}

	c.publishEvent(ctx, events.TypeNoteUnshared, map[string]interface{}{
		"note_id": note.Id,
		"user_id": userId,
	})

	return &dto.ShareNoteResponse{
		IsPublic: false,
	}, nil
}

func (c *noteService) ShowShared(ctx context.Context, requesterId uuid.UUID, token string, passcode string) (*dto.SharedNoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByPublicToken{Token: token},
		specification.PublicOnly{},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, nil
	}

	outcome := access.Evaluate(accessSnapshot(note), requesterId, passcode)

	res := dto.SharedNoteResponse{
		Title:     note.Title,
		Encrypted: note.Encrypted,
		UpdatedAt: note.UpdatedAt,
	}

	switch outcome {
	case access.Denied:
		// Unreachable for a public note, but handle it anyway.
		return nil, ErrNoteAccessDenied
	case access.PasscodeRequired:
		res.PasscodeRequired = true
		res.Content = EncryptedContentPlaceholder
	case access.ViewOnly, access.ViewAndEdit:
		res.Content = note.Content
		res.CanEdit = outcome.CanEdit()
	}

	return &res, nil
}

func (c *noteService) publishUsageRecalc(ctx context.Context, userId uuid.UUID) {
	if c.publisherService == nil {
		return
	}

	payload := dto.RecalcUsageMessage{UserId: userId}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := c.publisherService.Publish(ctx, payloadJson); err != nil {
		fmt.Printf("[WARN] Failed to publish usage recalc for %s: %v\n", userId, err)
	}
}

func (c *noteService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if c.eventPublisher == nil {
		return
	}

	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	// Log but don't fail the request, notifications are auxiliary.
	if err := c.eventPublisher.Publish(ctx, evt); err != nil {
		fmt.Printf("[WARN] Failed to publish %s event: %v\n", eventType, err)
	}
}
