// Package gitlab implements the release engine's TagRepository on top of the
// GitLab REST API.
package gitlab

import (
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	gl "gitlab.com/gitlab-org/api/client-go"

	oerrors "github.com/avides/gitlab-release/internal/errors"
	"github.com/avides/gitlab-release/internal/release"
)

// Connector creates GitLab API clients. It satisfies release.Connector.
type Connector struct {
	httpClient *http.Client
	log        *log.Logger
}

var _ release.Connector = (*Connector)(nil)

// ConnectorOption configures a Connector.
type ConnectorOption func(*Connector)

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(c *http.Client) ConnectorOption {
	return func(conn *Connector) {
		conn.httpClient = c
	}
}

// WithLogger sets the logger receiving per-request debug lines.
func WithLogger(l *log.Logger) ConnectorOption {
	return func(conn *Connector) {
		conn.log = l
	}
}

// NewConnector creates a Connector. Without options it uses
// NewHTTPClient(DefaultTransportConfig()) and discards request logs.
func NewConnector(opts ...ConnectorOption) *Connector {
	c := &Connector{}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = NewHTTPClient(DefaultTransportConfig())
	}
	if c.log == nil {
		c.log = log.New(io.Discard)
	}
	return c
}

// Connect builds a client for host authenticated with token. No request is
// made here; a bad token surfaces on the first call.
func (c *Connector) Connect(host, token string) (release.TagRepository, error) {
	host = strings.TrimSpace(host)
	// A blank host is a configuration mistake, so it fails here instead of on
	// the first request like an unreachable one.
	if host == "" {
		return nil, oerrors.NewValidationError("GitLab host must not be empty", "", "host",
			"set --host or host in the config file")
	}

	client, err := gl.NewClient(token,
		gl.WithBaseURL(host),
		gl.WithHTTPClient(c.httpClient),
		gl.WithoutRetries(),
		gl.WithCustomLeveledLogger(newRequestLogger(c.log)),
	)
	if err != nil {
		return nil, oerrors.WrapCause(oerrors.ErrConnectivity, err, "creating GitLab client")
	}

	return &Repository{client: client, host: host}, nil
}
