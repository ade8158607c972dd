package webserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yunbow/line-faq-bot/src/bot"
	"github.com/yunbow/line-faq-bot/src/config"
	"github.com/yunbow/line-faq-bot/src/faq"
	"github.com/yunbow/line-faq-bot/src/line"
	"github.com/yunbow/line-faq-bot/src/store"
	"github.com/yunbow/line-faq-bot/src/subscribers"
	"github.com/yunbow/line-faq-bot/src/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockDispatcher records dispatched batches.
type MockDispatcher struct {
	Batches    [][]line.Event
	RequestIDs []string
}

func (m *MockDispatcher) Dispatch(ctx context.Context, events []line.Event) {
	m.Batches = append(m.Batches, events)
	m.RequestIDs = append(m.RequestIDs, bot.RequestID(ctx))
}

func newTestRouter(t *testing.T, secret string) (*gin.Engine, *MockDispatcher, *store.MemoryStore) {
	t.Helper()
	d := &MockDispatcher{}
	st := store.NewMemoryStore()
	cfg := config.Config{AdminJWTSecret: secret}
	return New(cfg, d, st), d, st
}

func post(r http.Handler, path, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWebhookDispatchesEvents(t *testing.T) {
	r, d, _ := newTestRouter(t, "")
	body := `{"destination":"Ubot","events":[
		{"type":"follow","source":{"type":"user","userId":"U1"}},
		{"type":"message","replyToken":"tok","source":{"type":"user","userId":"U1"},"message":{"type":"text","text":"1"}}
	]}`

	w := post(r, "/webhook", body, map[string]string{"X-Request-ID": "req-1"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if len(d.Batches) != 1 || len(d.Batches[0]) != 2 {
		t.Fatalf("unexpected batches: %+v", d.Batches)
	}
	ev := d.Batches[0][1]
	if ev.Type != "message" || ev.ReplyToken != "tok" || ev.Message == nil || ev.Message.Text != "1" {
		t.Errorf("event not decoded: %+v", ev)
	}
	if d.RequestIDs[0] != "req-1" {
		t.Errorf("request id not propagated: %q", d.RequestIDs[0])
	}
	if w.Header().Get("X-Request-ID") != "req-1" {
		t.Errorf("request id not echoed")
	}
}

func TestWebhookRootPath(t *testing.T) {
	r, d, _ := newTestRouter(t, "")
	w := post(r, "/", `{"events":[]}`, nil)
	if w.Code != http.StatusOK || len(d.Batches) != 1 {
		t.Fatalf("status=%d batches=%d", w.Code, len(d.Batches))
	}
}

func TestWebhookMalformedPayloadIsAcknowledged(t *testing.T) {
	r, d, _ := newTestRouter(t, "")
	w := post(r, "/webhook", `{"events": [`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if len(d.Batches) != 0 {
		t.Errorf("malformed payload must not dispatch")
	}
	var resp map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["status"] != "ok" {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestAdminDisabledWithoutSecret(t *testing.T) {
	r, _, _ := newTestRouter(t, "")
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/faq", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d", w.Code)
	}
}

func TestAdminRequiresToken(t *testing.T) {
	r, _, _ := newTestRouter(t, "s3cret")
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/subscribers", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d", w.Code)
	}

	bad, _ := IssueAdminToken("ops", time.Hour, []byte("other"))
	req = httptest.NewRequest(http.MethodGet, "/v1/admin/subscribers", nil)
	req.Header.Set("Authorization", "Bearer "+bad)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong secret accepted: %d", w.Code)
	}
}

func TestAdminListsTables(t *testing.T) {
	r, _, st := newTestRouter(t, "s3cret")
	ctx := context.Background()
	_ = st.ReplaceFAQ(ctx, []types.FAQEntry{{ID: "1", Kind: types.KindMessage, Text: "Welcome!"}})
	_ = st.AppendSubscriber(ctx, types.Subscriber{SourceType: types.SourceUser, UserID: "U1", FollowState: types.Following})
	_ = st.AppendSubscriber(ctx, types.Subscriber{SourceType: types.SourceUser, UserID: "U2", FollowState: types.Unfollowed})

	tok, err := IssueAdminToken("ops", time.Hour, []byte("s3cret"))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/subscribers", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var subs struct {
		Count     int `json:"count"`
		Following int `json:"following"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &subs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if subs.Count != 2 || subs.Following != 1 {
		t.Errorf("unexpected body: %s", w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/admin/faq", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Welcome!") {
		t.Errorf("status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestIssueAdminTokenRequiresSecret(t *testing.T) {
	if _, err := IssueAdminToken("ops", time.Hour, nil); err == nil {
		t.Error("expected error for empty secret")
	}
}

func TestHealthz(t *testing.T) {
	r, _, _ := newTestRouter(t, "")
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
}

func TestWebhookEndToEndFollowPushesWelcome(t *testing.T) {
	var pushes []string
	platform := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			To       string          `json:"to"`
			Messages json.RawMessage `json:"messages"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		pushes = append(pushes, r.URL.Path+" "+body.To+" "+string(body.Messages))
		_, _ = w.Write([]byte(`{"sentMessages":[{"id":"1"}]}`))
	}))
	defer platform.Close()

	st := store.NewMemoryStore()
	_ = st.ReplaceFAQ(context.Background(), []types.FAQEntry{{ID: "1", Kind: types.KindMessage, Text: "Welcome!"}})

	d := bot.NewDispatcher(bot.Config{
		Resolver:  faq.NewResolver(st),
		Directory: subscribers.NewDirectory(st),
		Notifier:  line.NewClient(line.ClientConfig{Endpoint: platform.URL, ChannelToken: "tok"}),
	})
	r := New(config.Config{}, d, st)

	w := post(r, "/webhook", `{"events":[{"type":"follow","source":{"type":"user","userId":"Unew"}}]}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if len(pushes) != 1 || pushes[0] != `/message/push Unew [{"type":"text","text":"Welcome!"}]` {
		t.Fatalf("unexpected pushes: %q", pushes)
	}
	subs, _ := st.ListSubscribers(context.Background())
	if len(subs) != 1 || subs[0].FollowState != types.Following {
		t.Errorf("subscriber not recorded: %+v", subs)
	}
}
