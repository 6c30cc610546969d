package service

import (
	"context"
	"fmt"
	"time"

	"syncpad-be/internal/dto"
	"syncpad-be/internal/entity"
	"syncpad-be/internal/pkg/logger"
	"syncpad-be/internal/repository/specification"
	"syncpad-be/internal/repository/unitofwork"
	"syncpad-be/pkg/admin/dashboard"
	"syncpad-be/pkg/events"
	pktNats "syncpad-be/pkg/nats"

	"github.com/google/uuid"
)

type IAdminService interface {
	GetDashboardStats(ctx context.Context) (*dto.AdminDashboardStats, error)
	ListUsers(ctx context.Context, query string, page, limit int) ([]*dto.AdminUserListItem, error)
	UpdateUserStatus(ctx context.Context, req *dto.UpdateUserStatusRequest) error
	GetSystemLogs(ctx context.Context, page, limit int, level string) ([]*dto.LogListResponse, error)
	GetLogDetail(ctx context.Context, logId string) (*dto.LogDetailResponse, error)
}

type adminService struct {
	uowFactory     unitofwork.RepositoryFactory
	aggregator     *dashboard.Aggregator
	logger         logger.ILogger
	eventPublisher *pktNats.Publisher
}

func NewAdminService(
	uowFactory unitofwork.RepositoryFactory,
	aggregator *dashboard.Aggregator,
	loggerSvc logger.ILogger,
	eventPublisher *pktNats.Publisher,
) IAdminService {
	return &adminService{
		uowFactory:     uowFactory,
		aggregator:     aggregator,
		logger:         loggerSvc,
		eventPublisher: eventPublisher,
	}
}

func (s *adminService) GetDashboardStats(ctx context.Context) (*dto.AdminDashboardStats, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.aggregator.GetStats(ctx, uow)
}

func (s *adminService) ListUsers(ctx context.Context, query string, page, limit int) ([]*dto.AdminUserListItem, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	}
	if query != "" {
		specs = append(specs, specification.UserSearchQuery{Query: query})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	users, err := uow.UserRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.AdminUserListItem, 0, len(users))
	for _, u := range users {
		items = append(items, &dto.AdminUserListItem{
			Id:        u.Id,
			Email:     u.Email,
			FullName:  u.FullName,
			Role:      string(u.Role),
			Status:    string(u.Status),
			CreatedAt: u.CreatedAt,
		})
	}
	return items, nil
}

func (s *adminService) UpdateUserStatus(ctx context.Context, req *dto.UpdateUserStatusRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user not found")
	}
	if user.Role == entity.UserRoleAdmin {
		return fmt.Errorf("cannot change status of an admin account")
	}

	if err := uow.UserRepository().UpdateStatus(ctx, req.Id, req.Status); err != nil {
		return err
	}

	s.logger.Info("admin", "User status updated", map[string]interface{}{
		"user_id": req.Id.String(),
		"status":  req.Status,
	})

	if req.Status == string(entity.UserStatusBlocked) {
		s.publishBlocked(ctx, req.Id)
	}
	return nil
}

func (s *adminService) publishBlocked(ctx context.Context, userId uuid.UUID) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type: events.TypeUserBlocked,
		Data: map[string]interface{}{
			"user_id": userId,
		},
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("admin", "Failed to publish user blocked event", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (s *adminService) GetSystemLogs(ctx context.Context, page, limit int, level string) ([]*dto.LogListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	return s.aggregator.GetSystemLogs(ctx, s.logger, page, limit, level)
}

func (s *adminService) GetLogDetail(ctx context.Context, logId string) (*dto.LogDetailResponse, error) {
	return s.aggregator.GetLogDetail(ctx, s.logger, logId)
}
