package service

import (
	"context"
	"encoding/json"
	"fmt"

	"syncpad-be/internal/dto"
	"syncpad-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Start(ctx context.Context) error
}

// consumerService drains the usage-recalc topic and rewrites the storage
// aggregate for each user it is told about.
type consumerService struct {
	topic      string
	pubSub     *gochannel.GoChannel
	uowFactory unitofwork.RepositoryFactory
}

func NewConsumerService(topic string, pubSub *gochannel.GoChannel, uowFactory unitofwork.RepositoryFactory) IConsumerService {
	return &consumerService{
		topic:      topic,
		pubSub:     pubSub,
		uowFactory: uowFactory,
	}
}

func (s *consumerService) Start(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topic)
	if err != nil {
		return fmt.Errorf("failed to subscribe to topic %s: %w", s.topic, err)
	}

	go s.process(ctx, messages)
	return nil
}

func (s *consumerService) process(ctx context.Context, messages <-chan *message.Message) {
	for msg := range messages {
		var payload dto.RecalcUsageMessage
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			fmt.Printf("[CONSUMER ERROR] Invalid usage recalc payload: %v\n", err)
			msg.Ack() // Malformed, retrying won't help
			continue
		}

		if err := s.recalc(ctx, payload.UserId); err != nil {
			fmt.Printf("[CONSUMER ERROR] Usage recalc failed for %s: %v\n", payload.UserId, err)
			msg.Nack()
			continue
		}

		msg.Ack()
	}
}

func (s *consumerService) recalc(ctx context.Context, userId uuid.UUID) error {
	if userId == uuid.Nil {
		return fmt.Errorf("missing user id")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	usage, err := uow.StorageUsageRepository().ComputeForUser(ctx, userId)
	if err != nil {
		return err
	}

	if usage.NoteCount == 0 {
		// Last note gone; drop the row instead of keeping a zero aggregate.
		return uow.StorageUsageRepository().DeleteByUserId(ctx, userId)
	}

	return uow.StorageUsageRepository().Upsert(ctx, usage)
}
