package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"syncpad-be/internal/dto"
	"syncpad-be/internal/entity"
	"syncpad-be/internal/pkg/mailer"
	"syncpad-be/internal/repository/memory"
	"syncpad-be/internal/repository/specification"
	"syncpad-be/internal/repository/unitofwork"
	"syncpad-be/pkg/events"
	pktNats "syncpad-be/pkg/nats"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const maxSecurityAnswerAttempts = 3

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountBlocked     = errors.New("account is blocked")
	ErrResetFlowInvalid   = errors.New("reset flow is invalid or expired")
	ErrWrongAnswer        = errors.New("security answer does not match")
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	LoginAdmin(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	ForgotPasswordStart(ctx context.Context, req *dto.ForgotPasswordStartRequest) (*dto.ForgotPasswordStartResponse, error)
	ForgotPasswordVerify(ctx context.Context, req *dto.ForgotPasswordVerifyRequest) (*dto.ForgotPasswordVerifyResponse, error)
	ForgotPasswordReset(ctx context.Context, req *dto.ForgotPasswordResetRequest) error
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	resetFlows     *memory.ResetFlowRepository
	emailService   mailer.IEmailService
	eventPublisher *pktNats.Publisher
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	resetFlows *memory.ResetFlowRepository,
	emailService mailer.IEmailService,
	eventPublisher *pktNats.Publisher,
) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		resetFlows:     resetFlows,
		emailService:   emailService,
		eventPublisher: eventPublisher,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// The answer is credential material, hash it the same way as passwords.
	// Normalize first so "Rex " and "rex" verify as the same answer.
	answerHash, err := bcrypt.GenerateFromPassword([]byte(normalizeAnswer(req.SecurityAnswer)), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash security answer: %w", err)
	}

	user := entity.User{
		Id:                 uuid.New(),
		Email:              email,
		FullName:           req.FullName,
		PasswordHash:       string(passwordHash),
		Role:               entity.UserRoleUser,
		Status:             entity.UserStatusActive,
		SecurityQuestion:   req.SecurityQuestion,
		SecurityAnswerHash: string(answerHash),
		CreatedAt:          time.Now(),
	}

	if err := uow.UserRepository().Create(ctx, &user); err != nil {
		return nil, err
	}

	return &dto.RegisterResponse{
		Id:    user.Id,
		Email: user.Email,
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	return s.login(ctx, req, false)
}

func (s *authService) LoginAdmin(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	return s.login(ctx, req, true)
}

func (s *authService) login(ctx context.Context, req *dto.LoginRequest, adminOnly bool) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: strings.ToLower(strings.TrimSpace(req.Email))})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.Status == entity.UserStatusBlocked {
		return nil, ErrAccountBlocked
	}
	if adminOnly && user.Role != entity.UserRoleAdmin {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: accessToken,
		User: dto.UserInfo{
			Id:       user.Id,
			Email:    user.Email,
			FullName: user.FullName,
			Role:     string(user.Role),
		},
	}, nil
}

// ForgotPasswordStart looks up the account and opens a reset flow. The
// response is the same shape whether or not the email exists, so the
// endpoint cannot be used to enumerate accounts.
func (s *authService) ForgotPasswordStart(ctx context.Context, req *dto.ForgotPasswordStartRequest) (*dto.ForgotPasswordStartResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: strings.ToLower(strings.TrimSpace(req.Email))})
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Decoy flow. It accepts no answer, so it leads nowhere.
		return &dto.ForgotPasswordStartResponse{
			FlowId:           uuid.NewString(),
			SecurityQuestion: "What was the name of your first pet?",
		}, nil
	}

	flow := memory.ResetFlow{
		Id:        uuid.NewString(),
		UserId:    user.Id,
		Step:      memory.StepQuestionIssued,
		CreatedAt: time.Now(),
	}
	s.resetFlows.Save(&flow)

	return &dto.ForgotPasswordStartResponse{
		FlowId:           flow.Id,
		SecurityQuestion: user.SecurityQuestion,
	}, nil
}

func (s *authService) ForgotPasswordVerify(ctx context.Context, req *dto.ForgotPasswordVerifyRequest) (*dto.ForgotPasswordVerifyResponse, error) {
	flow, found := s.resetFlows.Get(req.FlowId)
	if !found || flow.Step != memory.StepQuestionIssued {
		return nil, ErrResetFlowInvalid
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: flow.UserId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.resetFlows.Delete(flow.Id)
		return nil, ErrResetFlowInvalid
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.SecurityAnswerHash), []byte(normalizeAnswer(req.Answer))); err != nil {
		flow.Attempts++
		if flow.Attempts >= maxSecurityAnswerAttempts {
			// Burn the flow; the caller has to start over.
			s.resetFlows.Delete(flow.Id)
			return nil, ErrResetFlowInvalid
		}
		s.resetFlows.Save(flow)
		return nil, ErrWrongAnswer
	}

	resetToken, err := generateResetToken()
	if err != nil {
		return nil, err
	}

	flow.Step = memory.StepAnswerVerified
	flow.ResetToken = resetToken
	s.resetFlows.Save(flow)

	return &dto.ForgotPasswordVerifyResponse{
		ResetToken: resetToken,
	}, nil
}

func (s *authService) ForgotPasswordReset(ctx context.Context, req *dto.ForgotPasswordResetRequest) error {
	flow, found := s.resetFlows.Get(req.FlowId)
	if !found || flow.Step != memory.StepAnswerVerified || flow.ResetToken != req.ResetToken {
		return ErrResetFlowInvalid
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: flow.UserId})
	if err != nil {
		return err
	}
	if user == nil {
		s.resetFlows.Delete(flow.Id)
		return ErrResetFlowInvalid
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := uow.UserRepository().UpdatePassword(ctx, user.Id, string(passwordHash)); err != nil {
		return err
	}

	// Single use, successful or not the flow is done.
	s.resetFlows.Delete(flow.Id)

	go func(email string) {
		if err := s.emailService.SendPasswordChangedNotice(email); err != nil {
			fmt.Printf("[WARN] Password notice mail failed for %s: %v\n", email, err)
		}
	}(user.Email)

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: events.TypePasswordChanged,
			Data: map[string]interface{}{
				"user_id": user.Id,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish password changed event: %v\n", err)
		}
	}

	return nil
}

func normalizeAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}

func generateAccessToken(user *entity.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"role":    string(user.Role),
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
