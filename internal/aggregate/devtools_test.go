package aggregate

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fakeTargets = `[
	{"targetId": "T1", "type": "page", "title": "Inbox", "url": "https://mail.example.com", "attached": false, "canAccessOpener": false},
	{"targetId": "W1", "type": "service_worker", "title": "sw", "url": "https://mail.example.com/sw.js", "attached": false, "canAccessOpener": false}
]`

// fakeDevTools serves /json/version and a browser websocket that answers
// Target.getTargets. It records every method the client sends.
type fakeDevTools struct {
	server *httptest.Server
	closed chan struct{}

	mu      sync.Mutex
	methods []string
}

func newFakeDevTools(t *testing.T) *fakeDevTools {
	t.Helper()
	f := &fakeDevTools{closed: make(chan struct{})}
	upgrader := websocket.Upgrader{}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /json/version", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"webSocketDebuggerUrl": "ws://%s/devtools/browser/fake"}`, r.Host)
	})
	mux.HandleFunc("/devtools/browser/fake", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		defer close(f.closed)

		for {
			var msg struct {
				ID     int64  `json:"id"`
				Method string `json:"method"`
			}
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			f.mu.Lock()
			f.methods = append(f.methods, msg.Method)
			f.mu.Unlock()

			result := `{}`
			if msg.Method == "Target.getTargets" {
				result = `{"targetInfos": ` + fakeTargets + `}`
			}
			reply := fmt.Sprintf(`{"id": %d, "result": %s}`, msg.ID, result)
			if err := conn.WriteMessage(websocket.TextMessage, []byte(reply)); err != nil {
				return
			}
		}
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeDevTools) received() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.methods...)
}

func TestDevToolsTabs_ListsPagesWithoutClosingBrowser(t *testing.T) {
	fake := newFakeDevTools(t)

	candidates, err := DevToolsTabs{URL: fake.server.URL, Timeout: 5 * time.Second}.Candidates(context.Background())
	require.NoError(t, err)

	require.Len(t, candidates, 1)
	assert.Equal(t, "T1", candidates[0].ID)
	assert.Equal(t, "Inbox", candidates[0].Title)

	select {
	case <-fake.closed:
	case <-time.After(5 * time.Second):
		t.Fatal("websocket was not released")
	}
	assert.Equal(t, []string{"Target.getTargets"}, fake.received())
}

func TestDebuggerURL(t *testing.T) {
	fake := newFakeDevTools(t)
	host := strings.TrimPrefix(fake.server.URL, "http://")

	got, err := debuggerURL(context.Background(), fake.server.URL)
	require.NoError(t, err)
	assert.Equal(t, "ws://"+host+"/devtools/browser/fake", got)

	got, err = debuggerURL(context.Background(), "ws://"+host)
	require.NoError(t, err)
	assert.Equal(t, "ws://"+host+"/devtools/browser/fake", got)

	direct := "ws://127.0.0.1:9222/devtools/browser/abc"
	got, err = debuggerURL(context.Background(), direct)
	require.NoError(t, err)
	assert.Equal(t, direct, got)
}

func TestDebuggerURL_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := debuggerURL(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
