package postal_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/belgahub/hub/internal/postal"
	"github.com/belgahub/hub/internal/setup/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *postal.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Postal{BaseURL: server.URL, RequestTimeout: 5000}

	return postal.New(cfg, zap.NewNop())
}

func TestLookup(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/01310100/json/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"cep":"01310-100","logradouro":"Avenida Paulista","bairro":"Bela Vista","localidade":"São Paulo","uf":"SP"}`))
	})

	address := client.Lookup(context.Background(), "01310-100")
	require.NotNil(t, address)
	assert.Equal(t, "São Paulo", address.City)
	assert.Equal(t, "SP", address.State)
}

func TestLookupUnknownCode(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"erro": true}`))
	})

	assert.Nil(t, client.Lookup(context.Background(), "99999999"))
}

func TestLookupMalformedCode(t *testing.T) {
	t.Parallel()

	called := false
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	assert.Nil(t, client.Lookup(context.Background(), "123"))
	assert.Nil(t, client.Lookup(context.Background(), "not-a-cep"))
	assert.False(t, called)
}

func TestLookupServerFailure(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	assert.Nil(t, client.Lookup(context.Background(), "01310100"))
}
