package commands

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"time"

	reqdto "aura-inn/internal/handler/dto/request"
	"aura-inn/internal/pkg/clock"
	"aura-inn/internal/pkg/errs"
	"aura-inn/internal/pkg/jwt"
	"aura-inn/internal/pkg/password"
	"aura-inn/internal/usecase/shared"
)

var (
	ErrInvalidCredentials = errs.New("invalid credentials")
	ErrTokenGeneration    = errs.New("token generation failed")
)

type LoginResult struct {
	Username  string
	Token     string
	ExpiresAt time.Time
}

type AuthCommands interface {
	Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error)
}

// AdminCredentials is the single administrator account configured for the site.
type AdminCredentials struct {
	Username     string
	PasswordHash string
}

type TokenIssuer interface {
	GenerateToken(username string) (string, error)
	TokenDuration() time.Duration
}

type authCommandsImpl struct {
	admin    AdminCredentials
	tokens   TokenIssuer
	activity shared.ActivityRecorder
	clock    clock.Clock
	logger   *slog.Logger
}

var _ TokenIssuer = (*jwt.Service)(nil)

func NewAuthCommands(
	admin AdminCredentials,
	tokens TokenIssuer,
	activity shared.ActivityRecorder,
	clk clock.Clock,
	logger *slog.Logger,
) AuthCommands {
	return &authCommandsImpl{
		admin:    admin,
		tokens:   tokens,
		activity: activity,
		clock:    clk,
		logger:   logger,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error) {
	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(a.admin.Username)) == 1
	// hash is compared even on a username mismatch
	pwErr := password.Compare(a.admin.PasswordHash, req.Password)
	if !userOK || pwErr != nil {
		a.logger.WarnContext(ctx, "admin login rejected", "username", req.Username)
		if pwErr == nil {
			pwErr = password.ErrMismatch
		}
		return nil, errs.Mark(pwErr, ErrInvalidCredentials)
	}

	token, err := a.tokens.GenerateToken(a.admin.Username)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	a.activity.Record(ctx, "auth.login", a.admin.Username)
	return &LoginResult{
		Username:  a.admin.Username,
		Token:     token,
		ExpiresAt: a.clock.Now().Add(a.tokens.TokenDuration()),
	}, nil
}
