package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"syncpad-be/internal/dto"
	"syncpad-be/internal/entity"
	"syncpad-be/internal/pkg/mailer"
	"syncpad-be/internal/repository/specification"
	"syncpad-be/internal/repository/unitofwork"
	"syncpad-be/pkg/events"
	pktNats "syncpad-be/pkg/nats"

	"github.com/google/uuid"
)

var (
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrSelfMiniNote      = errors.New("cannot send a mini note to yourself")
)

type IMiniNoteService interface {
	Send(ctx context.Context, senderId uuid.UUID, req *dto.SendMiniNoteRequest) (*dto.SendMiniNoteResponse, error)
	Inbox(ctx context.Context, userId uuid.UUID) ([]*dto.MiniNoteResponse, error)
	MarkRead(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type miniNoteService struct {
	uowFactory     unitofwork.RepositoryFactory
	emailService   mailer.IEmailService
	eventPublisher *pktNats.Publisher
}

func NewMiniNoteService(
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	eventPublisher *pktNats.Publisher,
) IMiniNoteService {
	return &miniNoteService{
		uowFactory:     uowFactory,
		emailService:   emailService,
		eventPublisher: eventPublisher,
	}
}

func (s *miniNoteService) Send(ctx context.Context, senderId uuid.UUID, req *dto.SendMiniNoteRequest) (*dto.SendMiniNoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	recipient, err := uow.UserRepository().FindOne(ctx,
		specification.ByEmail{Email: strings.ToLower(strings.TrimSpace(req.RecipientEmail))},
	)
	if err != nil {
		return nil, err
	}
	if recipient == nil {
		return nil, ErrRecipientNotFound
	}
	if recipient.Id == senderId {
		return nil, ErrSelfMiniNote
	}

	sender, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: senderId})
	if err != nil {
		return nil, err
	}
	if sender == nil {
		return nil, fmt.Errorf("sender %s not found", senderId)
	}

	miniNote := entity.MiniNote{
		Id:          uuid.New(),
		SenderId:    senderId,
		RecipientId: recipient.Id,
		Content:     req.Content,
		CreatedAt:   time.Now(),
	}

	if err := uow.MiniNoteRepository().Create(ctx, &miniNote); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: events.TypeMiniNoteSent,
			Data: map[string]interface{}{
				"mini_note_id": miniNote.Id,
				"recipient_id": recipient.Id,
				"sender_name":  sender.FullName,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish mini note event: %v\n", err)
		}
	}

	go func(email, senderName string) {
		if err := s.emailService.SendMiniNoteAlert(email, senderName); err != nil {
			fmt.Printf("[WARN] Mini note alert mail failed for %s: %v\n", email, err)
		}
	}(recipient.Email, sender.FullName)

	return &dto.SendMiniNoteResponse{
		Id: miniNote.Id,
	}, nil
}

func (s *miniNoteService) Inbox(ctx context.Context, userId uuid.UUID) ([]*dto.MiniNoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	miniNotes, err := uow.MiniNoteRepository().FindAll(ctx,
		specification.ByRecipient{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	// Resolve sender names in one pass, the inbox is small.
	senderNames := make(map[uuid.UUID]string)
	responses := make([]*dto.MiniNoteResponse, 0, len(miniNotes))
	for _, mn := range miniNotes {
		name, ok := senderNames[mn.SenderId]
		if !ok {
			sender, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: mn.SenderId})
			if err != nil {
				return nil, err
			}
			if sender != nil {
				name = sender.FullName
			}
			senderNames[mn.SenderId] = name
		}

		responses = append(responses, &dto.MiniNoteResponse{
			Id:         mn.Id,
			SenderId:   mn.SenderId,
			SenderName: name,
			Content:    mn.Content,
			Read:       mn.Read,
			CreatedAt:  mn.CreatedAt,
		})
	}

	return responses, nil
}

func (s *miniNoteService) MarkRead(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	miniNote, err := uow.MiniNoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.ByRecipient{UserID: userId},
	)
	if err != nil {
		return err
	}
	if miniNote == nil {
		return nil
	}

	return uow.MiniNoteRepository().MarkRead(ctx, miniNote.Id)
}

// Delete removes a mini note from the recipient's inbox. Senders keep no
// copy, so only the recipient can delete.
func (s *miniNoteService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	miniNote, err := uow.MiniNoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.ByRecipient{UserID: userId},
	)
	if err != nil {
		return err
	}
	if miniNote == nil {
		return nil
	}

	return uow.MiniNoteRepository().Delete(ctx, id)
}
