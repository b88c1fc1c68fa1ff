package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithProvider(t *testing.T) {
	ctx := WithProvider(context.Background(), "OpenAI")
	assert.Equal(t, "OpenAI", Provider(ctx))
	assert.Empty(t, Provider(context.Background()))
}

func TestNewInstrumentedClient_Timeout(t *testing.T) {
	assert.Equal(t, 5*time.Second, NewInstrumentedClient(5*time.Second).Timeout)
	assert.Equal(t, DefaultTimeout, NewInstrumentedClient(0).Timeout)
}

func TestInstrumentedClient_RoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/fail" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewInstrumentedClient(time.Second)

	for path, want := range map[string]int{"/ok": http.StatusOK, "/fail": http.StatusBadGateway} {
		req, err := http.NewRequestWithContext(WithProvider(context.Background(), "Test"), http.MethodGet, srv.URL+path, nil)
		require.NoError(t, err)

		resp, err := client.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, want, resp.StatusCode)
	}
}
