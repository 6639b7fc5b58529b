// Package stream adapts the hosted video and chat provider to
// ports.CommunicationGateway through the provider's Go SDKs.
package stream

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	getstream "github.com/GetStream/getstream-go"
	chat "github.com/GetStream/stream-chat-go/v7"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultTokenTTL = time.Hour
)

// Config carries the provider credentials and endpoints.
type Config struct {
	APIKey    string
	APISecret string
	ChatURL   string
	VideoURL  string
	Timeout   time.Duration
	TokenTTL  time.Duration
}

// Client bundles the chat and video SDK clients. Both authenticate with the
// same key pair.
type Client struct {
	chat     *chat.Client
	video    *getstream.Stream
	tokenTTL time.Duration
	now      func() time.Time
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, errors.New("stream: api key and secret are required")
	}
	for _, raw := range []string{cfg.ChatURL, cfg.VideoURL} {
		if _, err := url.ParseRequestURI(raw); err != nil {
			return nil, fmt.Errorf("stream: invalid base url %q: %w", raw, err)
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	chatClient, err := chat.NewClient(cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("stream: chat client: %w", err)
	}
	chatClient.BaseURL = strings.TrimRight(cfg.ChatURL, "/")
	chatClient.HTTP = &http.Client{Timeout: timeout}

	videoClient, err := getstream.NewClient(cfg.APIKey, cfg.APISecret,
		getstream.WithBaseUrl(strings.TrimRight(cfg.VideoURL, "/")),
		getstream.WithTimeout(timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("stream: video client: %w", err)
	}

	return &Client{
		chat:     chatClient,
		video:    videoClient,
		tokenTTL: ttl,
		now:      time.Now,
	}, nil
}

// StatusCode returns the HTTP status of a provider error, or 0 when err did
// not come from the provider.
func StatusCode(err error) int {
	var chatErr chat.Error
	if errors.As(err, &chatErr) {
		return chatErr.StatusCode
	}
	var videoErr getstream.StreamError
	if errors.As(err, &videoErr) {
		return videoErr.StatusCode
	}
	return 0
}

// IsNotFound reports whether err is a provider 404.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}
