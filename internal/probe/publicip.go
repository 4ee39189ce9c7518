package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const maxIPResponse = 4 << 10

// PublicIP fetches the externally observed address from an IP echo
// service. The client timeout bounds the whole fetch so a network outage
// degrades the section instead of hanging the run.
type PublicIP struct {
	url    string
	client *http.Client
}

// NewPublicIP builds a probe against the given echo URL.
func NewPublicIP(url string, timeout time.Duration) *PublicIP {
	return &PublicIP{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (p *PublicIP) Run(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", p.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: unexpected status %s", p.url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxIPResponse))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	ip := strings.TrimSpace(string(body))
	if ip == "" {
		return "", fmt.Errorf("fetch %s: empty response", p.url)
	}
	return ip + "\n", nil
}
