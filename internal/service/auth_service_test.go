package service

import (
	"context"
	"testing"

	"syncpad-be/internal/dto"
	"syncpad-be/internal/entity"
	"syncpad-be/internal/repository/memory"
	"syncpad-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func matchUser(u *entity.User, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if u.Id != s.ID {
				return false
			}
		case specification.ByEmail:
			if u.Email != s.Email {
				return false
			}
		case specification.ByStatus:
			if string(u.Status) != s.Status {
				return false
			}
		case specification.ByRole:
			if string(u.Role) != s.Role {
				return false
			}
		}
	}
	return true
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	cp := *user
	r.users[user.Id] = &cp
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	cp := *user
	r.users[user.Id] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, u := range r.users {
		if matchUser(u, specs) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	var res []*entity.User
	for _, u := range r.users {
		if matchUser(u, specs) {
			cp := *u
			res = append(res, &cp)
		}
	}
	return res, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	users, _ := r.FindAll(ctx, specs...)
	return int64(len(users)), nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, userId uuid.UUID, hash string) error {
	if u, ok := r.users[userId]; ok {
		u.PasswordHash = hash
	}
	return nil
}

func (r *fakeUserRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	if u, ok := r.users[id]; ok {
		u.Status = entity.UserStatus(status)
	}
	return nil
}

type fakeMailer struct {
	passwordNotices []string
	miniNoteAlerts  []string
}

func (m *fakeMailer) SendPasswordChangedNotice(toEmail string) error {
	m.passwordNotices = append(m.passwordNotices, toEmail)
	return nil
}

func (m *fakeMailer) SendMiniNoteAlert(toEmail, senderName string) error {
	m.miniNoteAlerts = append(m.miniNoteAlerts, toEmail)
	return nil
}

func newAuthServiceForTest() (IAuthService, *fakeUserRepo) {
	userRepo := newFakeUserRepo()
	factory := &fakeFactory{uow: &fakeUow{noteRepo: newFakeNoteRepo(), userRepo: userRepo}}
	return NewAuthService(factory, memory.NewResetFlowRepository(), &fakeMailer{}, nil), userRepo
}

func registerTestUser(t *testing.T, svc IAuthService) *dto.RegisterResponse {
	t.Helper()
	res, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:            "alice@example.com",
		FullName:         "Alice",
		Password:         "correct-horse",
		SecurityQuestion: "First pet?",
		SecurityAnswer:   "Rex",
	})
	require.NoError(t, err)
	return res
}

func TestRegisterHashesCredentials(t *testing.T) {
	svc, repo := newAuthServiceForTest()
	res := registerTestUser(t, svc)

	stored := repo.users[res.Id]
	require.NotNil(t, stored)
	assert.NotEqual(t, "correct-horse", stored.PasswordHash)
	assert.NotEqual(t, "Rex", stored.SecurityAnswerHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct-horse")))
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newAuthServiceForTest()
	registerTestUser(t, svc)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:            "Alice@Example.com",
		FullName:         "Imposter",
		Password:         "whatever1",
		SecurityQuestion: "q",
		SecurityAnswer:   "a",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginIssuesToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc, _ := newAuthServiceForTest()
	registerTestUser(t, svc)

	res, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, "alice@example.com", res.User.Email)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginBlockedAccount(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc, repo := newAuthServiceForTest()
	res := registerTestUser(t, svc)
	repo.users[res.Id].Status = entity.UserStatusBlocked

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, ErrAccountBlocked)
}

func TestForgotPasswordFullFlow(t *testing.T) {
	svc, repo := newAuthServiceForTest()
	res := registerTestUser(t, svc)

	start, err := svc.ForgotPasswordStart(context.Background(), &dto.ForgotPasswordStartRequest{
		Email: "alice@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "First pet?", start.SecurityQuestion)

	// Answer matching is case and whitespace insensitive.
	verify, err := svc.ForgotPasswordVerify(context.Background(), &dto.ForgotPasswordVerifyRequest{
		FlowId: start.FlowId,
		Answer: "  rex ",
	})
	require.NoError(t, err)
	require.NotEmpty(t, verify.ResetToken)

	err = svc.ForgotPasswordReset(context.Background(), &dto.ForgotPasswordResetRequest{
		FlowId:      start.FlowId,
		ResetToken:  verify.ResetToken,
		NewPassword: "brand-new-pass",
	})
	require.NoError(t, err)

	stored := repo.users[res.Id]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("brand-new-pass")))

	// The flow is single use.
	err = svc.ForgotPasswordReset(context.Background(), &dto.ForgotPasswordResetRequest{
		FlowId:      start.FlowId,
		ResetToken:  verify.ResetToken,
		NewPassword: "another-pass",
	})
	assert.ErrorIs(t, err, ErrResetFlowInvalid)
}

func TestForgotPasswordStepsCannotBeSkipped(t *testing.T) {
	svc, _ := newAuthServiceForTest()
	registerTestUser(t, svc)

	start, err := svc.ForgotPasswordStart(context.Background(), &dto.ForgotPasswordStartRequest{
		Email: "alice@example.com",
	})
	require.NoError(t, err)

	// Reset before verify must fail even with a guessed token.
	err = svc.ForgotPasswordReset(context.Background(), &dto.ForgotPasswordResetRequest{
		FlowId:      start.FlowId,
		ResetToken:  "guessed",
		NewPassword: "sneaky-pass",
	})
	assert.ErrorIs(t, err, ErrResetFlowInvalid)
}

func TestForgotPasswordAttemptsAreLimited(t *testing.T) {
	svc, _ := newAuthServiceForTest()
	registerTestUser(t, svc)

	start, err := svc.ForgotPasswordStart(context.Background(), &dto.ForgotPasswordStartRequest{
		Email: "alice@example.com",
	})
	require.NoError(t, err)

	for i := 0; i < maxSecurityAnswerAttempts-1; i++ {
		_, err = svc.ForgotPasswordVerify(context.Background(), &dto.ForgotPasswordVerifyRequest{
			FlowId: start.FlowId,
			Answer: "wrong",
		})
		assert.ErrorIs(t, err, ErrWrongAnswer)
	}

	// The final wrong answer burns the flow entirely.
	_, err = svc.ForgotPasswordVerify(context.Background(), &dto.ForgotPasswordVerifyRequest{
		FlowId: start.FlowId,
		Answer: "wrong",
	})
	assert.ErrorIs(t, err, ErrResetFlowInvalid)

	// Even the right answer no longer works on this flow.
	_, err = svc.ForgotPasswordVerify(context.Background(), &dto.ForgotPasswordVerifyRequest{
		FlowId: start.FlowId,
		Answer: "Rex",
	})
	assert.ErrorIs(t, err, ErrResetFlowInvalid)
}

func TestForgotPasswordUnknownEmailYieldsDecoyFlow(t *testing.T) {
	svc, _ := newAuthServiceForTest()

	start, err := svc.ForgotPasswordStart(context.Background(), &dto.ForgotPasswordStartRequest{
		Email: "nobody@example.com",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, start.FlowId)
	assert.NotEmpty(t, start.SecurityQuestion)

	// The decoy flow leads nowhere.
	_, err = svc.ForgotPasswordVerify(context.Background(), &dto.ForgotPasswordVerifyRequest{
		FlowId: start.FlowId,
		Answer: "anything",
	})
	assert.ErrorIs(t, err, ErrResetFlowInvalid)
}
