package proxy

import (
	"net/http"
	"net/url"
	"sync"

	"github.com/williampepple1/party-sheet-scraper/internal/config"
)

// Manager hands out proxies from the configured list, rotating through
// them in order when rotation is enabled.
type Manager struct {
	Config *config.ProxyConfig

	mu   sync.Mutex
	next int
}

// NewManager creates a new proxy manager
func NewManager(config *config.ProxyConfig) *Manager {
	return &Manager{
		Config: config,
	}
}

// Enabled reports whether a proxy should be used at all
func (m *Manager) Enabled() bool {
	return m != nil && m.Config != nil && m.Config.Enabled && len(m.Config.List) > 0
}

// Next returns the proxy URL to use for the next connection, or nil when
// proxies are disabled.
func (m *Manager) Next() (*url.URL, error) {
	if !m.Enabled() {
		return nil, nil
	}

	m.mu.Lock()
	proxyStr := m.Config.List[m.next%len(m.Config.List)]
	if m.Config.Rotate {
		m.next++
	}
	m.mu.Unlock()

	proxyURL, err := url.Parse(proxyStr)
	if err != nil {
		return nil, err
	}

	// Add authentication if provided
	if m.Config.Auth.Username != "" && m.Config.Auth.Password != "" {
		proxyURL.User = url.UserPassword(m.Config.Auth.Username, m.Config.Auth.Password)
	}

	return proxyURL, nil
}

// ApplyToTransport points the transport at the next proxy and returns the
// proxy used, without credentials.
func (m *Manager) ApplyToTransport(transport *http.Transport) (string, error) {
	proxyURL, err := m.Next()
	if err != nil {
		return "", err
	}
	if proxyURL == nil {
		return "", nil
	}

	transport.Proxy = http.ProxyURL(proxyURL)
	return ServerAddress(proxyURL), nil
}

// ServerAddress renders a proxy as scheme://host, the form the browser's
// proxy-server flag accepts.
func ServerAddress(u *url.URL) string {
	if u == nil {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
