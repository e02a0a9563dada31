package services

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"github.com/comfortcurators/portal/modules/core/domain/entities/identity"
	"github.com/comfortcurators/portal/modules/core/domain/entities/profile"
	"github.com/comfortcurators/portal/modules/core/domain/entities/session"
	"github.com/comfortcurators/portal/pkg/composables"
	"github.com/comfortcurators/portal/pkg/metrics"
)

// ErrInvalidCredentials covers both an unknown email and a wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

type CookieOptions struct {
	Name   string
	Domain string
	Secure bool
}

type AuthOptions struct {
	SessionDuration time.Duration
	Cookie          CookieOptions
}

type SignUpParams struct {
	FullName string
	Email    string
	Password string
}

type AuthService struct {
	identities     identity.Repository
	profiles       profile.Repository
	sessionService *SessionService
	opts           AuthOptions
	logger         *logrus.Logger
	now            func() time.Time
}

func NewAuthService(
	identities identity.Repository,
	profiles profile.Repository,
	sessionService *SessionService,
	opts AuthOptions,
	logger *logrus.Logger,
) *AuthService {
	return &AuthService{
		identities:     identities,
		profiles:       profiles,
		sessionService: sessionService,
		opts:           opts,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *AuthService) CookieName() string {
	return s.opts.Cookie.Name
}

func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*identity.Identity, *session.Session, error) {
	u, err := s.identities.GetByEmail(ctx, email)
	if errors.Is(err, identity.ErrNotFound) {
		metrics.SignIns.WithLabelValues("invalid").Inc()
		return nil, nil, ErrInvalidCredentials
	}
	if err != nil {
		metrics.SignIns.WithLabelValues("error").Inc()
		return nil, nil, errors.Wrap(err, "get identity")
	}
	if !u.CheckPassword(password) {
		metrics.SignIns.WithLabelValues("invalid").Inc()
		return nil, nil, ErrInvalidCredentials
	}

	sess, err := s.authenticate(ctx, u)
	if err != nil {
		metrics.SignIns.WithLabelValues("error").Inc()
		return nil, nil, err
	}
	metrics.SignIns.WithLabelValues("ok").Inc()
	return u, sess, nil
}

func (s *AuthService) CookieAuthenticate(ctx context.Context, email, password string) (*http.Cookie, error) {
	_, sess, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.Cookie(sess), nil
}

// SignUp creates the identity and its profile together. The new user signs in separately.
func (s *AuthService) SignUp(ctx context.Context, params SignUpParams) (*identity.Identity, error) {
	u, err := identity.New(params.Email).SetPassword(params.Password)
	if err != nil {
		metrics.SignUps.WithLabelValues("error").Inc()
		return nil, errors.Wrap(err, "hash password")
	}

	err = composables.InTx(ctx, func(txCtx context.Context) error {
		created, err := s.identities.Create(txCtx, u)
		if err != nil {
			return err
		}
		u = created
		fullName := params.FullName
		return s.profiles.Save(txCtx, profile.New(u.ID(), &fullName))
	})
	if errors.Is(err, identity.ErrEmailTaken) {
		metrics.SignUps.WithLabelValues("taken").Inc()
		return nil, err
	}
	if err != nil {
		metrics.SignUps.WithLabelValues("error").Inc()
		return nil, errors.Wrap(err, "create identity")
	}
	metrics.SignUps.WithLabelValues("ok").Inc()
	s.logger.WithField("user_id", u.ID()).Info("identity created")
	return u, nil
}

// Authorize resolves a session token to its identity. An unknown or expired token yields
// session.ErrNotFound, which callers treat as "not signed in".
func (s *AuthService) Authorize(ctx context.Context, token string) (*identity.Identity, *session.Session, error) {
	if token == "" {
		return nil, nil, session.ErrNotFound
	}
	sess, err := s.sessionService.GetByToken(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	if sess.IsExpired(s.now()) {
		if err := s.sessionService.Delete(ctx, token); err != nil && !errors.Is(err, session.ErrNotFound) {
			s.logger.WithError(err).Warn("failed to delete expired session")
		}
		return nil, nil, session.ErrNotFound
	}
	u, err := s.identities.GetByID(ctx, sess.UserID())
	if errors.Is(err, identity.ErrNotFound) {
		return nil, nil, session.ErrNotFound
	}
	if err != nil {
		return nil, nil, errors.Wrap(err, "get identity")
	}
	return u, sess, nil
}

// Logout ends the session. Logging out an unknown token is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessionService.Delete(ctx, token); err != nil && !errors.Is(err, session.ErrNotFound) {
		return err
	}
	return nil
}

func (s *AuthService) Cookie(sess *session.Session) *http.Cookie {
	return &http.Cookie{
		Name:     s.opts.Cookie.Name,
		Value:    sess.Token(),
		Expires:  sess.ExpiresAt(),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.opts.Cookie.Secure,
		Domain:   s.opts.Cookie.Domain,
		Path:     "/",
	}
}

// ExpiredCookie clears the session cookie in the browser.
func (s *AuthService) ExpiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     s.opts.Cookie.Name,
		Value:    "",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.opts.Cookie.Secure,
		Domain:   s.opts.Cookie.Domain,
		Path:     "/",
	}
}

func (s *AuthService) authenticate(ctx context.Context, u *identity.Identity) (*session.Session, error) {
	ip, userAgent := composables.UseClient(ctx)

	sess, err := session.New(session.CreateParams{
		UserID:    u.ID(),
		IP:        ip,
		UserAgent: userAgent,
		Duration:  s.opts.SessionDuration,
	})
	if err != nil {
		return nil, errors.Wrap(err, "generate session token")
	}
	if err := s.sessionService.Create(ctx, sess); err != nil {
		return nil, errors.Wrap(err, "create session")
	}
	s.logger.WithField("user_id", u.ID()).Info("session created")
	return sess, nil
}
