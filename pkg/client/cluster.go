package client

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/Jeffail/gabs"
	"github.com/Masterminds/semver/v3"

	"github.com/wattle/kubeclient/internal/logging"
)

// versionPath is the server's version probe endpoint.
const versionPath = "/version"

// Cluster is the process-wide handle to one API server. It is constructed
// once, holds the base URL, port and the lazily probed server version, and
// is safe for concurrent use: all fields are immutable after construction
// except the version cache, whose initialization is serialized.
type Cluster struct {
	baseURL    string
	port       int
	httpClient *http.Client
	logger     *slog.Logger
	query      url.Values

	version lazyValue[*semver.Version]
}

type clusterConfig struct {
	httpClient *http.Client
	logger     *slog.Logger
	query      url.Values
	skipProbe  bool
}

// Option configures a Cluster during construction.
type Option func(*clusterConfig)

// WithHTTPClient replaces the default pooled HTTP client. Useful for tests
// and for custom TLS or proxy setups.
func WithHTTPClient(hc *http.Client) Option {
	return func(cfg *clusterConfig) {
		cfg.httpClient = hc
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *clusterConfig) {
		cfg.logger = logger
	}
}

// WithQuery replaces the default query string (pretty=1) appended to every
// request URL.
func WithQuery(query url.Values) Option {
	return func(cfg *clusterConfig) {
		cfg.query = query
	}
}

// WithoutVersionProbe skips the construction-time version probe. The version
// is then probed lazily on first use; until a probe succeeds, version
// comparisons return ErrUnversioned.
func WithoutVersionProbe() Option {
	return func(cfg *clusterConfig) {
		cfg.skipProbe = true
	}
}

// NewCluster constructs the cluster handle and synchronously probes the
// server version. A failed probe fails construction rather than leaving the
// handle silently unversioned; callers that want to tolerate an unreachable
// version endpoint pass WithoutVersionProbe.
func NewCluster(baseURL string, port int, opts ...Option) (*Cluster, error) {
	cfg := &clusterConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.httpClient == nil {
		cfg.httpClient = defaultHTTPClient()
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.query == nil {
		cfg.query = url.Values{"pretty": []string{"1"}}
	}

	c := &Cluster{
		baseURL:    baseURL,
		port:       port,
		httpClient: cfg.httpClient,
		logger:     cfg.logger,
		query:      cfg.query,
	}

	if !cfg.skipProbe {
		if _, err := c.Version(context.Background()); err != nil {
			return nil, fmt.Errorf("probing cluster version: %w", err)
		}
	}

	return c, nil
}

// defaultHTTPClient returns a client with pooling and dial timeouts suited
// to a mix of short exchanges and long-lived watch connections. There is no
// global request timeout: watches block indefinitely, so deadlines belong on
// the per-call context.
func defaultHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout: 10 * time.Second,
			ForceAttemptHTTP2:   true,
		},
	}
}

// BaseURL returns the scheme://host the cluster was constructed with.
func (c *Cluster) BaseURL() string {
	return c.baseURL
}

// Port returns the API server port.
func (c *Cluster) Port() int {
	return c.port
}

// Version returns the server's semantic version, probing the version
// endpoint on first use. A failed probe is returned to the caller and
// retried on the next call; it is never swallowed.
func (c *Cluster) Version(ctx context.Context) (*semver.Version, error) {
	return c.version.Get(func() (*semver.Version, error) {
		return c.probeVersion(ctx)
	})
}

// Versioned reports whether a version probe has succeeded.
func (c *Cluster) Versioned() bool {
	_, ok := c.version.Value()
	return ok
}

// NewerThan reports whether the cached server version is at least v.
// Returns ErrUnversioned when no probe has succeeded yet.
func (c *Cluster) NewerThan(v string) (bool, error) {
	cur, min, err := c.comparable(v)
	if err != nil {
		return false, err
	}
	return !cur.LessThan(min), nil
}

// OlderThan reports whether the cached server version is strictly below v.
// Returns ErrUnversioned when no probe has succeeded yet.
func (c *Cluster) OlderThan(v string) (bool, error) {
	cur, min, err := c.comparable(v)
	if err != nil {
		return false, err
	}
	return cur.LessThan(min), nil
}

func (c *Cluster) comparable(v string) (*semver.Version, *semver.Version, error) {
	other, err := semver.NewVersion(v)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing version %q: %w", v, err)
	}
	cur, ok := c.version.Value()
	if !ok {
		return nil, nil, ErrUnversioned
	}
	return cur, other, nil
}

// probeVersion fetches the version endpoint and parses its gitVersion field.
func (c *Cluster) probeVersion(ctx context.Context) (*semver.Version, error) {
	rawURL := fmt.Sprintf("%s:%d%s", c.baseURL, c.port, versionPath)

	_, body, err := c.do(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	doc, err := gabs.ParseJSON(body)
	if err != nil {
		return nil, fmt.Errorf("decoding version response: %w", err)
	}

	gitVersion, _ := doc.Path("gitVersion").Data().(string)
	v, err := semver.NewVersion(gitVersion)
	if err != nil {
		return nil, fmt.Errorf("parsing gitVersion %q: %w", gitVersion, err)
	}

	c.logger.Debug("probed cluster version",
		slog.String("gitVersion", gitVersion),
		logging.Host(c.baseURL))
	return v, nil
}
