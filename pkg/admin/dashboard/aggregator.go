package dashboard

import (
	"context"
	"time"

	"syncpad-be/internal/dto"
	"syncpad-be/internal/entity"
	"syncpad-be/internal/pkg/logger"
	"syncpad-be/internal/repository/specification"
	"syncpad-be/internal/repository/unitofwork"
)

// Aggregator handles dashboard statistics
type Aggregator struct {
	logger logger.ILogger
}

// NewAggregator creates a new dashboard aggregator
func NewAggregator(logger logger.ILogger) *Aggregator {
	return &Aggregator{
		logger: logger,
	}
}

// GetStats retrieves dashboard statistics
func (a *Aggregator) GetStats(ctx context.Context, uow unitofwork.UnitOfWork) (*dto.AdminDashboardStats, error) {
	totalUsers, err := uow.UserRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	activeUsers, err := uow.UserRepository().Count(ctx, specification.ByStatus{Status: string(entity.UserStatusActive)})
	if err != nil {
		return nil, err
	}

	blockedUsers, err := uow.UserRepository().Count(ctx, specification.ByStatus{Status: string(entity.UserStatusBlocked)})
	if err != nil {
		return nil, err
	}

	totalNotes, err := uow.NoteRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	sharedNotes, err := uow.NoteRepository().Count(ctx, specification.PublicOnly{})
	if err != nil {
		return nil, err
	}

	encryptedNotes, err := uow.NoteRepository().Count(ctx, specification.EncryptedOnly{})
	if err != nil {
		return nil, err
	}

	totalBytes, err := uow.StorageUsageRepository().TotalBytes(ctx)
	if err != nil {
		return nil, err
	}

	// Top 5 storage consumers, with emails resolved for display.
	topUsage, err := uow.StorageUsageRepository().TopByBytes(ctx, 5)
	var topUsers []dto.UserStorageStats
	if err == nil {
		for _, u := range topUsage {
			email := ""
			if owner, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: u.UserId}); err == nil && owner != nil {
				email = owner.Email
			}
			topUsers = append(topUsers, dto.UserStorageStats{
				UserId:     u.UserId,
				Email:      email,
				NoteCount:  u.NoteCount,
				TotalBytes: u.TotalBytes,
			})
		}
	}

	return &dto.AdminDashboardStats{
		TotalUsers:        int(totalUsers),
		ActiveUsers:       int(activeUsers),
		BlockedUsers:      int(blockedUsers),
		TotalNotes:        totalNotes,
		SharedNotes:       sharedNotes,
		EncryptedNotes:    encryptedNotes,
		TotalStorageBytes: totalBytes,
		TopUsersByStorage: topUsers,
	}, nil
}

// GetSystemLogs retrieves system logs
func (a *Aggregator) GetSystemLogs(ctx context.Context, loggerSvc logger.ILogger, page, limit int, level string) ([]*dto.LogListResponse, error) {
	logs, err := loggerSvc.GetLogs(level, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	var res []*dto.LogListResponse
	for _, l := range logs {
		ts, _ := time.Parse(time.RFC3339, l.Timestamp)
		res = append(res, &dto.LogListResponse{
			Id:        l.Id,
			Level:     l.Level,
			Module:    l.Module,
			Message:   l.Message,
			CreatedAt: ts,
		})
	}
	return res, nil
}

// GetLogDetail retrieves a single log entry
func (a *Aggregator) GetLogDetail(ctx context.Context, loggerSvc logger.ILogger, logId string) (*dto.LogDetailResponse, error) {
	l, err := loggerSvc.GetLogById(logId)
	if err != nil {
		return nil, err
	}

	ts, _ := time.Parse(time.RFC3339, l.Timestamp)
	detailsMap := l.Details

	return &dto.LogDetailResponse{
		LogListResponse: dto.LogListResponse{
			Id:        logId,
			Level:     l.Level,
			Module:    l.Module,
			Message:   l.Message,
			CreatedAt: ts,
		},
		Details: detailsMap,
	}, nil
}
