// Package gateway is the typed HTTP client for the FutureIntern REST API.
//
// Every call goes through Client.Do, which attaches the session's bearer token,
// encodes and decodes JSON, and turns failures into *NetworkError or *HTTPError.
//
//	store := session.NewStore(session.NewFileBackend(path))
//	client := gateway.NewClient(store, gateway.WithBaseURL("https://api.futureintern.app/api/v1"))
//	page, err := client.Internships.List(ctx, gateway.ListParams{Search: "go"})
package gateway

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL points at a locally running API server.
	DefaultBaseURL = "http://localhost:8080/api/v1"
	// DefaultTimeout bounds every request, including uploads.
	DefaultTimeout = 30 * time.Second
)

// Session is the token storage the client reads from. Only login and refresh
// write to it; the client never clears it on its own.
type Session interface {
	Load() (string, bool, error)
	Save(token string) error
	RefreshToken() (string, bool, error)
	SaveRefreshToken(token string) error
	Logout() error
}

// Client is the FutureIntern API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	session    Session
	log        zerolog.Logger

	// Services
	Auth            *AuthService
	Users           *UsersService
	Internships     *InternshipsService
	Applications    *ApplicationsService
	Recommendations *RecommendationsService
	Admin           *AdminService
	Chatbot         *ChatbotService
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL sets the API root, including the version prefix.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the HTTP client timeout. Expiry surfaces as a *NetworkError.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if c.httpClient == nil {
			c.httpClient = &http.Client{}
		}
		c.httpClient.Timeout = timeout
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLogger sets a logger for request tracing at debug level.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient creates a client bound to the given session.
func NewClient(sess Session, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		userAgent: defaultUserAgent,
		session:   sess,
		log:       zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.Auth = &AuthService{client: c}
	c.Users = &UsersService{client: c}
	c.Internships = &InternshipsService{client: c}
	c.Applications = &ApplicationsService{client: c}
	c.Recommendations = &RecommendationsService{client: c}
	c.Admin = &AdminService{client: c}
	c.Chatbot = &ChatbotService{client: c}

	return c
}

// BaseURL returns the current base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Session returns the session the client reads tokens from.
func (c *Client) Session() Session {
	return c.session
}
