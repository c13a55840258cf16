package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/sendMessage", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("TOKEN", "100", WithAPIBase(srv.URL))
	require.NoError(t, tn.Send(context.Background(), "<b>hi</b>"))
	assert.Equal(t, "100", got["chat_id"])
	assert.Equal(t, "<b>hi</b>", got["text"])
	assert.Equal(t, "HTML", got["parse_mode"])
}

func TestSendWithRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("T", "1", WithAPIBase(srv.URL), WithRetryBackoff(time.Millisecond))
	require.NoError(t, tn.SendWithRetry(context.Background(), "x", 3))
	assert.EqualValues(t, 3, calls.Load())
}

func TestSendWithRetry_Exhausted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("T", "1", WithAPIBase(srv.URL), WithRetryBackoff(time.Millisecond))
	err := tn.SendWithRetry(context.Background(), "x", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 2 retries exhausted")
}

func TestStartPolling_RepliesToCommands(t *testing.T) {
	replies := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/botT/getUpdates":
			if r.URL.Query().Get("offset") == "0" {
				fmt.Fprint(w, `{"ok":true,"result":[{"update_id":7,"message":{"text":" /stock aapl "}},{"update_id":8}]}`)
				return
			}
			assert.Equal(t, "9", r.URL.Query().Get("offset"))
			time.Sleep(10 * time.Millisecond)
			fmt.Fprint(w, `{"ok":true,"result":[]}`)
		case "/botT/sendMessage":
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			replies <- body["text"]
			fmt.Fprint(w, `{"ok":true}`)
		}
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("T", "1", WithAPIBase(srv.URL))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		tn.StartPolling(ctx, func(_ context.Context, cmd string) string { return "got " + cmd })
		close(done)
	}()

	select {
	case reply := <-replies:
		assert.Equal(t, "got /stock aapl", reply)
	case <-time.After(5 * time.Second):
		t.Fatal("no reply sent")
	}
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("polling did not stop")
	}
}
