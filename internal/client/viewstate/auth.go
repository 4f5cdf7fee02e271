package viewstate

import (
	"context"

	"github.com/dmitrijs2005/fittracker/internal/client/models"
	"github.com/dmitrijs2005/fittracker/internal/client/repositories"
	"github.com/dmitrijs2005/fittracker/internal/logging"
)

// AuthResult is the outcome of a login or registration. UserID is zero
// when the backend did not return one.
type AuthResult struct {
	Success bool
	Message string
	UserID  int
}

type credentials struct {
	Email    string `validate:"notblank"`
	Password string `validate:"notblank"`
}

type registration struct {
	Username string `validate:"notblank"`
	Email    string `validate:"notblank"`
	Password string `validate:"notblank"`
}

var authMessages = map[string]string{
	"Username": MsgFillAll,
	"Email":    MsgFillAll,
	"Password": MsgFillAll,
}

// AuthHolder backs the login and registration screens.
type AuthHolder struct {
	lifecycle

	repo    repositories.AuthRepository
	session Session
	logger  logging.Logger

	LoginResult    Observable[*AuthResult]
	RegisterResult Observable[*AuthResult]

	login    stream
	register stream
}

func NewAuthHolder(repo repositories.AuthRepository, s Session, logger logging.Logger) *AuthHolder {
	return &AuthHolder{
		lifecycle: newLifecycle(),
		repo:      repo,
		session:   s,
		logger:    logger,
	}
}

// Login authenticates and, on success with a user id, remembers the user in
// the session. Empty fields are rejected locally.
func (h *AuthHolder) Login(ctx context.Context, email, password string) error {
	if err := check(credentials{Email: email, Password: password}, authMessages); err != nil {
		return err
	}

	ticket := h.login.begin()
	ctx, done := h.bind(ctx)
	defer done()

	env, err := h.repo.Login(ctx, email, password)
	if !h.login.accept(ticket, &h.lifecycle) {
		return nil
	}

	res := authResult(env, err, MsgLoginOK, MsgLoginFail)
	if res.Success && res.UserID <= 0 {
		h.logger.Warn(ctx, "login response without user id")
		res = &AuthResult{Message: MsgNoUserID}
	}
	if res.Success {
		if err := h.session.SaveUserID(ctx, res.UserID); err != nil {
			h.logger.Error(ctx, "save user id", "error", err)
			res = &AuthResult{Message: MsgStorage}
		}
	}
	if err != nil {
		h.logger.Warn(ctx, "login failed", "error", err)
	}

	h.LoginResult.Set(res)
	return nil
}

// Register creates an account. The session is left untouched; the user
// logs in afterwards.
func (h *AuthHolder) Register(ctx context.Context, username, email, password string) error {
	in := registration{Username: username, Email: email, Password: password}
	if err := check(in, authMessages); err != nil {
		return err
	}

	ticket := h.register.begin()
	ctx, done := h.bind(ctx)
	defer done()

	env, err := h.repo.Register(ctx, username, email, password)
	if !h.register.accept(ticket, &h.lifecycle) {
		return nil
	}
	if err != nil {
		h.logger.Warn(ctx, "registration failed", "error", err)
	}

	h.RegisterResult.Set(authResult(env, err, MsgRegisterOK, MsgRegisterFail))
	return nil
}

// Logout forgets the signed-in user and clears previous results.
func (h *AuthHolder) Logout(ctx context.Context) error {
	if err := h.session.Clear(ctx); err != nil {
		return &storageError{err: err}
	}
	h.Reset()
	return nil
}

// Reset clears the login and registration results.
func (h *AuthHolder) Reset() {
	h.LoginResult.Set(nil)
	h.RegisterResult.Set(nil)
}

func authResult(env *models.Envelope[models.AuthData], err error, okMsg, failMsg string) *AuthResult {
	if err != nil {
		return &AuthResult{Message: UserMessage(err, failMsg)}
	}
	if !env.Success {
		return &AuthResult{Message: env.Text(failMsg)}
	}

	res := &AuthResult{Success: true, Message: env.MessageOr(okMsg)}
	if env.Data != nil && env.Data.User != nil && env.Data.User.ID > 0 {
		res.UserID = env.Data.User.ID
	}
	return res
}
