package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/grovetools/catalogd/config"
	"github.com/grovetools/catalogd/internal/catalogd/store"
	"github.com/grovetools/catalogd/pkg/models"
	"github.com/grovetools/catalogd/schema"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

func newTestServer(t *testing.T, cfg config.ServerConfig, seed ...models.Cat) (*Server, *httptest.Server, *store.Store) {
	t.Helper()

	st := store.New(seed...)
	srv, err := New(st, cfg, testLogger())
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts, st
}

func post(t *testing.T, ts *httptest.Server, body string) (int, string) {
	t.Helper()

	resp, err := ts.Client().Post(ts.URL+GraphQLPath, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

func TestRoute(t *testing.T) {
	srv, _, _ := newTestServer(t, config.Default().Server)
	router := srv.Router()

	testCases := []struct {
		name        string
		method      string
		path        string
		body        string
		status      int
		contentType string
	}{
		{"schema", http.MethodGet, "/schema", "", http.StatusOK, contentTypeText},
		{"operation", http.MethodPost, "/graphql", `{"operationName":"listCats"}`, http.StatusOK, "application/json"},
		{"schema wrong method", http.MethodPost, "/schema", "", http.StatusNotFound, "application/json"},
		{"operation wrong method", http.MethodGet, "/graphql", "", http.StatusNotFound, "application/json"},
		{"trailing slash", http.MethodGet, "/schema/", "", http.StatusNotFound, "application/json"},
		{"unknown path", http.MethodGet, "/unknown-path", "", http.StatusNotFound, "application/json"},
		{"case sensitive", http.MethodGet, "/Schema", "", http.StatusNotFound, "application/json"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := router.Route(context.Background(), models.Request{
				Method: tc.method,
				Path:   tc.path,
				Body:   []byte(tc.body),
			})
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.contentType, resp.ContentType)
			if tc.status == http.StatusNotFound {
				assert.JSONEq(t, `{"error":"not found"}`, resp.Body)
			}
		})
	}
}

func TestSchemaEndpoint(t *testing.T) {
	_, ts, _ := newTestServer(t, config.Default().Server)

	resp, err := ts.Client().Get(ts.URL + SchemaPath)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, contentTypeText, resp.Header.Get("Content-Type"))
	assert.Equal(t, schema.Render(), string(body))
}

func TestListCatsOverHTTP(t *testing.T) {
	_, ts, _ := newTestServer(t, config.Default().Server, store.SampleCats()...)

	status, body := post(t, ts, `{"operationName":"listCats"}`)
	require.Equal(t, http.StatusOK, status)

	var resp struct {
		Data struct {
			ListCats []models.Cat `json:"listCats"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &resp))

	samples := store.SampleCats()
	require.Len(t, resp.Data.ListCats, len(samples))
	for i := range samples {
		assert.True(t, samples[i].Equal(resp.Data.ListCats[i]), "entry %d", i)
	}
}

func TestAddThenListOverHTTP(t *testing.T) {
	_, ts, st := newTestServer(t, config.Default().Server)

	status, body := post(t, ts, `{"operationName":"addCat","arguments":{"cat":{"name":"Tom","nicknames":["Thomas"],"picUrl":null,"colour":"Grey"}}}`)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"data":{"addCat":{}}}`, body)
	assert.Equal(t, 1, st.Len())

	status, body = post(t, ts, `{"operationName":"listCats"}`)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"data":{"listCats":[{"name":"Tom","nicknames":["Thomas"],"picUrl":null,"colour":"Grey"}]}}`, body)
}

func TestRejectedRequestsOverHTTP(t *testing.T) {
	_, ts, st := newTestServer(t, config.ServerConfig{MaxBodyBytes: 256})

	testCases := []struct {
		name     string
		body     string
		contains string
	}{
		{"not json", `{not json`, "malformed request"},
		{"empty body", ``, "malformed request"},
		{"unknown operation", `{"operationName":"deleteCat"}`, "deleteCat"},
		{"body too large", `{"operationName":"listCats","arguments":{"pad":"` + strings.Repeat("x", 512) + `"}}`, "malformed request"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := post(t, ts, tc.body)
			assert.Equal(t, http.StatusBadRequest, status)

			var errResp models.ErrorResponse
			require.NoError(t, json.Unmarshal([]byte(body), &errResp))
			assert.Contains(t, errResp.Error, tc.contains)
		})
	}

	assert.Equal(t, 0, st.Len())
}

func TestUnknownPathOverHTTP(t *testing.T) {
	_, ts, _ := newTestServer(t, config.Default().Server)

	resp, err := ts.Client().Get(ts.URL + "/unknown-path")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}

func TestBodyLimitOnlyAppliesToOperations(t *testing.T) {
	_, ts, _ := newTestServer(t, config.ServerConfig{MaxBodyBytes: 256})
	large := strings.Repeat("x", 512)

	testCases := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{"schema", http.MethodGet, SchemaPath, http.StatusOK},
		{"unknown path", http.MethodGet, "/unknown-path", http.StatusNotFound},
		{"schema wrong method", http.MethodPut, SchemaPath, http.StatusNotFound},
		{"operation", http.MethodPost, GraphQLPath, http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest(tc.method, ts.URL+tc.path, strings.NewReader(large))
			require.NoError(t, err)

			resp, err := ts.Client().Do(req)
			require.NoError(t, err)
			resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestUncleanPathsAreNotFound(t *testing.T) {
	_, ts, _ := newTestServer(t, config.Default().Server)

	for _, path := range []string{"/a/../schema", "//schema"} {
		t.Run(path, func(t *testing.T) {
			resp, err := ts.Client().Get(ts.URL + path)
			require.NoError(t, err)
			body, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			require.NoError(t, err)

			assert.Equal(t, http.StatusNotFound, resp.StatusCode)
			assert.JSONEq(t, `{"error":"not found"}`, string(body))
		})
	}
}

func TestHealthAndRequestID(t *testing.T) {
	_, ts, _ := newTestServer(t, config.Default().Server)

	resp, err := ts.Client().Get(ts.URL + HealthPath)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
	assert.Len(t, resp.Header.Get(RequestIDHeader), 36)

	req, err := http.NewRequest(http.MethodGet, ts.URL+HealthPath, nil)
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err = ts.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "abc-123", resp.Header.Get(RequestIDHeader))
}

func dialSubscriptions(t *testing.T, baseURL string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(baseURL, "http") + SubscriptionsPath
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	resp.Body.Close()
	return conn
}

func TestSubscriptionReceivesAddedCats(t *testing.T) {
	_, ts, st := newTestServer(t, config.Default().Server)

	conn := dialSubscriptions(t, ts.URL)
	defer conn.Close()

	require.Eventually(t, func() bool { return st.Subscribers() == 1 }, 2*time.Second, 10*time.Millisecond)

	status, _ := post(t, ts, `{"operationName":"addCat","arguments":{"cat":{"name":"Felix","nicknames":[],"picUrl":null,"colour":"Black"}}}`)
	require.Equal(t, http.StatusOK, status)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event models.CatAddedEvent
	require.NoError(t, conn.ReadJSON(&event))
	assert.True(t, event.Data.CatAdded.Equal(models.NewCat("Felix", models.ColourBlack, "")))

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	require.Eventually(t, func() bool { return st.Subscribers() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestShutdownClosesSubscriptions(t *testing.T) {
	st := store.New()
	srv, err := New(st, config.Default().Server, testLogger())
	require.NoError(t, err)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	served := make(chan error, 1)
	go func() { served <- srv.Serve(listener) }()

	conn := dialSubscriptions(t, "http://"+listener.Addr().String())
	defer conn.Close()
	require.Eventually(t, func() bool { return st.Subscribers() == 1 }, 2*time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)

	assert.ErrorIs(t, <-served, http.ErrServerClosed)
	assert.Equal(t, 0, st.Subscribers())
}
