package twilio

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"pet-lost-found/internal/ports/messaging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(t *testing.T, h http.HandlerFunc) *Gateway {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	g, err := New(Config{
		AccountSID: "AC123",
		AuthToken:  "token",
		BaseURL:    srv.URL,
		Timeout:    time.Second,
		MaxRetries: 2,
		Backoff:    time.Millisecond,
	}, nil)
	require.NoError(t, err)
	return g
}

func testMessage() messaging.TemplateMessage {
	return messaging.TemplateMessage{
		To:         "+573001112233",
		From:       "+14155238886",
		TemplateID: "HX123",
		Variables:  map[string]string{"1": "Max", "2": "labrador"},
	}
}

func TestSendTemplate_PostsContentTemplate(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Accounts/AC123/Messages.json", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "whatsapp:+573001112233", r.PostForm.Get("To"))
		assert.Equal(t, "whatsapp:+14155238886", r.PostForm.Get("From"))
		assert.Equal(t, "HX123", r.PostForm.Get("ContentSid"))

		var vars map[string]string
		require.NoError(t, json.Unmarshal([]byte(r.PostForm.Get("ContentVariables")), &vars))
		assert.Equal(t, "Max", vars["1"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"sid":"SM42","status":"queued"}`))
	})

	id, err := g.SendTemplate(context.Background(), testMessage())
	require.NoError(t, err)
	assert.Equal(t, "SM42", id)
}

func TestSendTemplate_RetriesRateLimit(t *testing.T) {
	var calls atomic.Int32
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"sid":"SM7"}`))
	})

	id, err := g.SendTemplate(context.Background(), testMessage())
	require.NoError(t, err)
	assert.Equal(t, "SM7", id)
	assert.Equal(t, int32(3), calls.Load())
}

func TestSendTemplate_ServerErrorPostsOnce(t *testing.T) {
	var calls atomic.Int32
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"sid":"SM2"}`))
	})

	_, err := g.SendTemplate(context.Background(), testMessage())
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSendTemplate_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":21211,"message":"invalid To"}`))
	})

	_, err := g.SendTemplate(context.Background(), testMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid To")
	assert.Equal(t, int32(1), calls.Load())
}

func TestSendTemplate_Validation(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	msg := testMessage()
	msg.TemplateID = ""
	_, err := g.SendTemplate(context.Background(), msg)
	assert.Error(t, err)

	_, err = New(Config{AccountSID: "AC1"}, nil)
	assert.Error(t, err)
}
