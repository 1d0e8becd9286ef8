package pmAuth

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	internalaudit "github.com/MrEthical07/pmAuth/internal/audit"
	"github.com/MrEthical07/pmAuth/internal/flows"
	"github.com/MrEthical07/pmAuth/internal/transport"
	"github.com/MrEthical07/pmAuth/invite"
	"github.com/MrEthical07/pmAuth/router"
	"github.com/MrEthical07/pmAuth/session"
)

// Builder defines a public type used by pmAuth APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config

	backend    session.Backend
	redis      redis.UniversalClient
	httpClient *http.Client
	auditSink  AuditSink
	logger     *log.Logger
	now        func() time.Time

	built bool
}

// New describes the new operation and its observable behavior.
//
// New starts from DefaultConfig; only the API base URL must be supplied.
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithBaseURL sets Config.API.BaseURL.
func (b *Builder) WithBaseURL(baseURL string) *Builder {
	b.config.API.BaseURL = baseURL
	return b
}

// WithBackend persists the session in backend, overriding Config.Storage.
// The caller keeps ownership of backend.
func (b *Builder) WithBackend(backend session.Backend) *Builder {
	b.backend = backend
	return b
}

// WithRedis persists the session in an existing Redis client under
// Config.Storage.RedisPrefix. The caller keeps ownership of client.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithHTTPClient sends backend requests through client.
func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.httpClient = client
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
//
// WithAuditSink only takes effect when Config.Audit.Enabled is set.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithLogger receives swallowed persistence failures and request failures.
func (b *Builder) WithLogger(logger *log.Logger) *Builder {
	b.logger = logger
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// withClock overrides the clock used for restored token expiry.
func (b *Builder) withClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build validates the configuration, opens the configured session backend and
// wires the client. A Builder can be built once. The returned client starts
// with a loading session; call Initialize to restore it.
func (b *Builder) Build() (*Client, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := b.config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := b.logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	// -------- SESSION BACKEND --------
	backend, closeBackend, err := b.openBackend(cfg)
	if err != nil {
		return nil, err
	}

	store := session.NewStore(backend, session.Options{
		Key:            cfg.Storage.Key,
		DiscardExpired: cfg.Session.DiscardExpired,
		ExpiryLeeway:   cfg.Session.ExpiryLeeway,
		Logger:         logger,
		Now:            b.now,
	})

	c := &Client{
		config:       cfg,
		store:        store,
		closeBackend: closeBackend,
		routes:       router.Default(),
		audit: internalaudit.NewDispatcher(internalaudit.Config{
			Enabled:      cfg.Audit.Enabled,
			BufferSize:   cfg.Audit.BufferSize,
			DropIfFull:   cfg.Audit.DropIfFull,
			FlushTimeout: cfg.Audit.FlushTimeout,
		}, b.auditSink),
		metrics: NewMetrics(cfg.Metrics),
		logger:  logger,
	}

	// -------- TRANSPORT --------
	httpc, err := transport.New(transport.Config{
		BaseURL:        cfg.API.BaseURL,
		UserAgent:      cfg.API.UserAgent,
		Timeout:        cfg.API.Timeout,
		HTTPClient:     b.httpClient,
		Tokens:         store,
		OnUnauthorized: c.onUnauthorized,
		Observe:        c.metrics.Observe,
		Logger:         logger,
	})
	if err != nil {
		c.audit.Close()
		if closeBackend != nil {
			_ = closeBackend()
		}
		return nil, err
	}
	c.http = httpc

	c.deps = flows.Deps{
		Auth:   flows.AuthDeps{Caller: httpc, Store: store},
		Invite: flows.InviteDeps{Caller: httpc},
		Users:  flows.UsersDeps{Caller: httpc},
	}
	c.issuer = invite.NewIssuer(cfg.origin(), inviteBackend{c: c})

	b.built = true
	return c, nil
}

func (b *Builder) openBackend(cfg Config) (session.Backend, func() error, error) {
	if b.backend != nil {
		return b.backend, nil, nil
	}
	if b.redis != nil {
		return session.NewRedisBackend(b.redis, cfg.Storage.RedisPrefix), nil, nil
	}

	switch cfg.Storage.Backend {
	case StorageSQLite:
		db, err := session.OpenSQLite(cfg.Storage.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open session store: %w", err)
		}
		return db, db.Close, nil
	case StorageRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Storage.RedisAddr,
			Password: cfg.Storage.RedisPassword,
			DB:       cfg.Storage.RedisDB,
		})
		return session.NewRedisBackend(rdb, cfg.Storage.RedisPrefix), rdb.Close, nil
	default:
		return session.NewMemoryBackend(), nil, nil
	}
}
