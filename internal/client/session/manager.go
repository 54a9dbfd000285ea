package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/dmitrijs2005/shopcart/internal/client/client"
	"github.com/dmitrijs2005/shopcart/internal/client/models"
	"github.com/dmitrijs2005/shopcart/internal/client/notice"
	"github.com/dmitrijs2005/shopcart/internal/client/store"
	"github.com/dmitrijs2005/shopcart/internal/logging"
)

type State int

const (
	LoggedOut State = iota
	LoggedIn
)

func (s State) String() string {
	if s == LoggedIn {
		return "logged-in"
	}
	return "logged-out"
}

const (
	msgInvalidCredentials = "Invalid username/password"
	msgLoginFailed        = "Login failed. Please try again."
	msgRegistered         = "Registration successful. You can now log in."
	msgUserExists         = "Username already exists"
	msgRegisterFailed     = "Registration failed. Please try again."
	msgLoggedOut          = "You have been logged out"
)

// Listener is told when a session begins or ends.
type Listener interface {
	SessionStarted(ctx context.Context)
	SessionEnded()
}

type multiSetter interface {
	SetMany(ctx context.Context, values map[string][]byte) error
}

type Manager struct {
	mu      sync.Mutex
	session models.Session

	store    store.Store
	client   client.Client
	listener Listener
	sink     notice.Sink
	log      logging.Logger
}

func NewManager(st store.Store, c client.Client, l Listener, sink notice.Sink, log logging.Logger) *Manager {
	if sink == nil {
		sink = notice.Discard
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Manager{
		store:    st,
		client:   c,
		listener: l,
		sink:     sink,
		log:      log.With("module", "session"),
	}
}

// Restore loads a previously persisted session. If either half is missing
// the manager stays logged out and nothing is sent to the server. A stored
// user that does not decode to a named user yields ErrCorruptSession.
func (m *Manager) Restore(ctx context.Context) error {
	token, err := m.store.Get(ctx, store.KeyToken)
	if err != nil {
		return fmt.Errorf("read token: %w", err)
	}
	rawUser, err := m.store.Get(ctx, store.KeyUser)
	if err != nil {
		return fmt.Errorf("read user: %w", err)
	}
	if len(token) == 0 || len(rawUser) == 0 {
		m.log.Debug(ctx, "no stored session")
		return nil
	}

	var user models.User
	if err := json.Unmarshal(rawUser, &user); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptSession, err)
	}
	if user.Username == "" {
		return fmt.Errorf("%w: user has no username", ErrCorruptSession)
	}

	m.start(ctx, string(token), &user)
	m.log.Info(ctx, "session restored", "username", user.Username)
	return nil
}

// Login authenticates creds against the server. On success the session is
// persisted, the form is cleared and the listener is notified.
func (m *Manager) Login(ctx context.Context, creds *Credentials) error {
	res, err := m.client.Login(ctx, creds.Username, string(creds.Password))
	if err != nil {
		m.log.Error(ctx, "login failed", "username", creds.Username, "error", err)
		if errors.Is(err, client.ErrUnauthorized) {
			m.notify(notice.Error, msgInvalidCredentials)
		} else {
			m.notify(notice.Error, msgLoginFailed)
		}
		return err
	}

	if err := m.persist(ctx, res); err != nil {
		m.log.Error(ctx, "failed to persist session", "error", err)
		m.notify(notice.Error, msgLoginFailed)
		return err
	}

	creds.Clear()
	m.start(ctx, res.Token, res.User)
	m.notify(notice.Success, fmt.Sprintf("Welcome, %s!", res.User.Username))
	return nil
}

// Register creates an account. It does not log in.
func (m *Manager) Register(ctx context.Context, creds *Credentials) error {
	err := m.client.Register(ctx, creds.Username, string(creds.Password))
	if err != nil {
		m.log.Error(ctx, "register failed", "username", creds.Username, "error", err)
		if client.IsStatus(err, http.StatusConflict) {
			m.notify(notice.Error, msgUserExists)
		} else {
			m.notify(notice.Error, msgRegisterFailed)
		}
		return err
	}
	creds.Clear()
	m.notify(notice.Success, msgRegistered)
	return nil
}

// Logout forgets the session locally. The server is not contacted. Store
// errors are returned, but in-memory state is cleared regardless.
func (m *Manager) Logout(ctx context.Context) error {
	errTok := m.store.Remove(ctx, store.KeyToken)
	errUser := m.store.Remove(ctx, store.KeyUser)
	err := errors.Join(errTok, errUser)
	if err != nil {
		m.log.Error(ctx, "failed to clear stored session", "error", err)
	}

	m.mu.Lock()
	m.session = models.Session{}
	m.mu.Unlock()

	m.client.ClearToken()
	if m.listener != nil {
		m.listener.SessionEnded()
	}
	m.notify(notice.Info, msgLoggedOut)
	return err
}

func (m *Manager) State() State {
	if m.IsLoggedIn() {
		return LoggedIn
	}
	return LoggedOut
}

// Session returns a copy of the current session.
func (m *Manager) Session() models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.session
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

func (m *Manager) IsLoggedIn() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.IsLoggedIn()
}

func (m *Manager) Username() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session.User == nil {
		return ""
	}
	return m.session.User.Username
}

func (m *Manager) start(ctx context.Context, token string, user *models.User) {
	m.mu.Lock()
	m.session = models.Session{Token: token, User: user}
	m.mu.Unlock()

	m.client.SetToken(token)
	if m.listener != nil {
		m.listener.SessionStarted(ctx)
	}
}

// persist writes both keys or neither.
func (m *Manager) persist(ctx context.Context, res *models.LoginResult) error {
	userJSON, err := json.Marshal(res.User)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	values := map[string][]byte{
		store.KeyToken: []byte(res.Token),
		store.KeyUser:  userJSON,
	}

	if ms, ok := m.store.(multiSetter); ok {
		err = ms.SetMany(ctx, values)
	} else {
		err = m.store.Set(ctx, store.KeyToken, values[store.KeyToken])
		if err == nil {
			err = m.store.Set(ctx, store.KeyUser, values[store.KeyUser])
		}
	}
	if err != nil {
		_ = m.store.Remove(ctx, store.KeyToken)
		_ = m.store.Remove(ctx, store.KeyUser)
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

func (m *Manager) notify(kind notice.Kind, msg string) {
	m.sink.Notify(notice.Notice{Kind: kind, Message: msg})
}
