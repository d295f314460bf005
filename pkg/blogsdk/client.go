package blogsdk

import (
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is where the blogger API listens in development.
const DefaultBaseURL = "http://localhost:8080"

// Client talks to the blogger API. It holds no credentials itself; wrap
// HTTPClient.Transport in an AuthTransport to attach the session token.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client with a 10 second timeout and the default
// transport.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}
