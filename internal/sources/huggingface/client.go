package huggingface

import (
	"net/http"
	"strings"
	"time"

	"github.com/MrSnakeDoc/hfqr/internal/domain"
	"github.com/MrSnakeDoc/hfqr/internal/utils"
)

// DefaultUserAgent is a browser-like agent; the Hub serves a reduced page to unknown clients.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL           string        // profile pages are fetched from {BaseURL}/{username}
	UserAgent         string        // sent on every request
	ProfileTimeout    time.Duration // timeout for one profile page fetch
	ImageTimeout      time.Duration // timeout for one image fetch
	MaxImageBytes     int64         // relayed bodies are cut after this many bytes
	AllowedImageHosts []string      // image host allow-list, empty = any host
	Transport         http.RoundTripper
}

// Client talks to huggingface.co: profile pages and avatar images.
type Client struct {
	baseURL       string
	userAgent     string
	pages         *http.Client
	images        *http.Client
	maxImageBytes int64
	imageHosts    *utils.HostMatcher
}

func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = domain.HubBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.ProfileTimeout <= 0 {
		opts.ProfileTimeout = 10 * time.Second
	}
	if opts.ImageTimeout <= 0 {
		opts.ImageTimeout = 10 * time.Second
	}
	if opts.MaxImageBytes <= 0 {
		opts.MaxImageBytes = 5 << 20
	}

	return &Client{
		baseURL:       strings.TrimSuffix(opts.BaseURL, "/"),
		userAgent:     opts.UserAgent,
		pages:         &http.Client{Timeout: opts.ProfileTimeout, Transport: opts.Transport},
		images:        &http.Client{Timeout: opts.ImageTimeout, Transport: opts.Transport},
		maxImageBytes: opts.MaxImageBytes,
		imageHosts:    utils.NewHostMatcher(opts.AllowedImageHosts),
	}
}
