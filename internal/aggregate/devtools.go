package aggregate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"

	"github.com/jonathan/glimpse/internal/types"
)

// DefaultDevToolsTimeout bounds a DevTools target listing
const DefaultDevToolsTimeout = 5 * time.Second

// DevToolsTabs lists the open pages of a running Chrome started with
// --remote-debugging-port. URL is the DevTools endpoint, for example
// http://127.0.0.1:9222, or a ws://.../devtools/browser/<id> address.
type DevToolsTabs struct {
	URL     string
	Timeout time.Duration
}

// Name implements Source
func (d DevToolsTabs) Name() string {
	return "devtools:" + d.URL
}

// Candidates implements Source
func (d DevToolsTabs) Candidates(ctx context.Context) ([]types.Candidate, error) {
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = DefaultDevToolsTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	wsURL, err := debuggerURL(ctx, d.URL)
	if err != nil {
		return nil, &SourceError{Source: d.Name(), Message: "failed to resolve DevTools websocket", Cause: err}
	}

	// A bare Browser, not chromedp.NewContext: the first chromedp context
	// owns the browser and sends Browser.close when cancelled. Cancelling
	// ctx here only drops the websocket.
	browser, err := chromedp.NewBrowser(ctx, wsURL)
	if err != nil {
		return nil, &SourceError{Source: d.Name(), Message: "failed to connect to DevTools", Cause: err}
	}

	targets, err := target.GetTargets().Do(cdp.WithExecutor(ctx, browser))
	if err != nil {
		return nil, &SourceError{Source: d.Name(), Message: "failed to list DevTools targets", Cause: err}
	}

	return pageCandidates(targets), nil
}

type devToolsVersion struct {
	WebSocketDebuggerURL string `json:"webSocketDebuggerUrl"`
}

// debuggerURL returns the browser websocket address for endpoint, asking
// /json/version unless endpoint already names a browser websocket.
func debuggerURL(ctx context.Context, endpoint string) (string, error) {
	if strings.Contains(endpoint, "/devtools/browser/") {
		return endpoint, nil
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "ws":
		u.Scheme = "http"
	case "wss":
		u.Scheme = "https"
	}
	u.Path = "/json/version"
	u.RawQuery = ""

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GET %s: %s", u, resp.Status)
	}

	var version devToolsVersion
	if err := json.NewDecoder(resp.Body).Decode(&version); err != nil {
		return "", fmt.Errorf("decode %s: %w", u, err)
	}
	if version.WebSocketDebuggerURL == "" {
		return "", fmt.Errorf("%s has no webSocketDebuggerUrl", u)
	}
	return version.WebSocketDebuggerURL, nil
}

// pageCandidates keeps page targets in listing order. DevTools does not
// expose window ids or focus, so WindowID and Active stay zero.
func pageCandidates(targets []*target.Info) []types.Candidate {
	candidates := make([]types.Candidate, 0, len(targets))
	for _, t := range targets {
		if t == nil || t.Type != "page" {
			continue
		}
		candidates = append(candidates, TabRecord{
			ID:    string(t.TargetID),
			Title: t.Title,
			URL:   t.URL,
		}.Candidate())
	}
	return candidates
}
