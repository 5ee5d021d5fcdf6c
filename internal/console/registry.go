package console

import (
	"context"
	"sync"
	"time"

	"backoffice-console/internal/apiclient"
	"backoffice-console/internal/common/config"
	commonhttp "backoffice-console/internal/common/http"
	"backoffice-console/internal/common/logger"
	"backoffice-console/internal/common/metrics"
	"backoffice-console/internal/notify"
	"backoffice-console/internal/resource"
	"backoffice-console/internal/resources/account"
	"backoffice-console/internal/session"
)

// navigator keeps the last redirect asked for during a request.
type navigator struct {
	mu     sync.Mutex
	target string
}

func (n *navigator) Redirect(path string) {
	n.mu.Lock()
	n.target = path
	n.mu.Unlock()
}

func (n *navigator) take() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	t := n.target
	n.target = ""
	return t
}

// ConsoleSession is everything one browser session owns. Requests of the
// same session are served one at a time.
type ConsoleSession struct {
	ID      string
	Session *session.Service
	Runtime *resource.Runtime
	Account *account.Client
	Toasts  *notify.Recorder

	nav      *navigator
	mu       sync.Mutex
	lastSeen time.Time
}

// TakeRedirect returns and clears the pending redirect.
func (s *ConsoleSession) TakeRedirect() string {
	return s.nav.take()
}

type RegistryOptions struct {
	Backend  session.Backend
	API      config.APIConfig
	HTTP     *commonhttp.Client
	CacheTTL time.Duration
	Logins   account.LoginRecorder
	Log      logger.Logger
}

// Registry holds the live sessions keyed by cookie id. Evicted sessions
// rehydrate from the backend on their next request.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*ConsoleSession
	opts     RegistryOptions
	log      logger.Logger
	now      func() time.Time
}

func NewRegistry(opts RegistryOptions) *Registry {
	if opts.Backend == nil {
		opts.Backend = session.NewMemoryBackend()
	}
	if opts.HTTP == nil {
		opts.HTTP = commonhttp.NewClient(30*time.Second, metrics.RequestObserver{})
	}
	if opts.Log == nil {
		opts.Log = logger.NewNoOpLogger()
	}
	return &Registry{
		sessions: make(map[string]*ConsoleSession),
		opts:     opts,
		log:      opts.Log.WithFields(map[string]interface{}{"component": "registry"}),
		now:      time.Now,
	}
}

// Acquire returns the session for id, creating and rehydrating it on first
// use, and locks it. The caller must call Release.
func (r *Registry) Acquire(ctx context.Context, id string) *ConsoleSession {
	r.mu.Lock()
	cs, ok := r.sessions[id]
	if !ok {
		cs = r.build(id)
		r.sessions[id] = cs
		metrics.ActiveSessions.Set(float64(len(r.sessions)))
	}
	r.mu.Unlock()

	cs.mu.Lock()
	r.mu.Lock()
	current, still := r.sessions[id]
	if !still {
		// swept between lookup and lock
		r.sessions[id] = cs
		metrics.ActiveSessions.Set(float64(len(r.sessions)))
	}
	r.mu.Unlock()
	if still && current != cs {
		cs.mu.Unlock()
		return r.Acquire(ctx, id)
	}

	if !ok {
		if err := cs.Session.Rehydrate(ctx); err != nil {
			r.log.Warn("Session rehydrate failed, starting empty", map[string]interface{}{"session": id, "error": err.Error()})
		}
	}
	cs.lastSeen = r.now()
	return cs
}

// Release unlocks a session taken with Acquire.
func (r *Registry) Release(cs *ConsoleSession) {
	cs.lastSeen = r.now()
	cs.mu.Unlock()
}

func (r *Registry) build(id string) *ConsoleSession {
	log := r.opts.Log.WithFields(map[string]interface{}{"session": id})
	nav := &navigator{}
	sess := session.New(r.opts.Backend.Open(id), log)
	api := apiclient.New(r.opts.API, r.opts.HTTP, sess, nav, log)
	toasts := notify.NewRecorder(log)
	rt := resource.NewRuntime(api, resource.NewCache(r.opts.CacheTTL, log), toasts, log)
	return &ConsoleSession{
		ID:      id,
		Session: sess,
		Runtime: rt,
		Account: account.New(rt, nav, r.opts.Logins),
		Toasts:  toasts,

		nav:      nav,
		lastSeen: r.now(),
	}
}

// Sweep evicts sessions idle for longer than idle. Sessions serving a
// request are skipped.
func (r *Registry) Sweep(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-idle)
	evicted := 0
	for id, cs := range r.sessions {
		if !cs.mu.TryLock() {
			continue
		}
		if cs.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			evicted++
		}
		cs.mu.Unlock()
	}
	metrics.ActiveSessions.Set(float64(len(r.sessions)))
	if evicted > 0 {
		r.log.Debug("Idle sessions evicted", map[string]interface{}{"count": evicted})
	}
	return evicted
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep(idle)
		}
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
