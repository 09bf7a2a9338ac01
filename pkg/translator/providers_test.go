package translator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibreTranslate_RequestShape(t *testing.T) {
	var got libreRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]string{"translatedText": "Привет"})
	}))
	defer srv.Close()

	p := NewLibreTranslate(srv.Client(), srv.URL, "secret")
	out, err := p.Translate(context.Background(), "Salom", "uz", "ru")

	require.NoError(t, err)
	assert.Equal(t, "Привет", out)
	assert.Equal(t, libreRequest{Q: "Salom", Source: "uz", Target: "ru", Format: "text", APIKey: "secret"}, got)
}

func TestLibreTranslate_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewLibreTranslate(srv.Client(), srv.URL, "").Translate(context.Background(), "Salom", "uz", "ru")
	assert.Error(t, err)
}

func TestGoogle_RequestShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "the-key", r.URL.Query().Get("key"))
		var body googleRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Salom", body.Q)
		assert.Equal(t, "uz", body.Source)
		assert.Equal(t, "en", body.Target)
		_, _ = w.Write([]byte(`{"data":{"translations":[{"translatedText":"Hello"}]}}`))
	}))
	defer srv.Close()

	out, err := NewGoogle(srv.Client(), srv.URL, "the-key").Translate(context.Background(), "Salom", "uz", "en")
	require.NoError(t, err)
	assert.Equal(t, "Hello", out)
}

func TestGoogle_ErrorHidesKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	srv.Close()

	_, err := NewGoogle(http.DefaultClient, srv.URL, "super-secret-key").Translate(context.Background(), "Salom", "uz", "en")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "super-secret-key")
}

func TestMyMemory_RequestShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "Salom", r.URL.Query().Get("q"))
		assert.Equal(t, "uz|en", r.URL.Query().Get("langpair"))
		_, _ = w.Write([]byte(`{"responseData":{"translatedText":"Hello"},"responseStatus":200}`))
	}))
	defer srv.Close()

	out, err := NewMyMemory(srv.Client(), srv.URL, "").Translate(context.Background(), "Salom", "uz", "en")
	require.NoError(t, err)
	assert.Equal(t, "Hello", out)
}

func TestMyMemory_QuotaStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"responseData":{"translatedText":"MYMEMORY WARNING"},"responseStatus":"429","responseDetails":"quota"}`))
	}))
	defer srv.Close()

	_, err := NewMyMemory(srv.Client(), srv.URL, "").Translate(context.Background(), "Salom", "uz", "en")
	assert.Error(t, err)
}

func TestChain_OverHTTPFallsBackToNextProvider(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer broken.Close()
	memory := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"responseData":{"translatedText":"Water formula?"},"responseStatus":200}`))
	}))
	defer memory.Close()

	chain := NewChain(Options{LibreTranslateURL: broken.URL, MyMemoryURL: memory.URL}, nil)

	assert.Equal(t, "Water formula?", chain.Translate(context.Background(), "Suv formulasi?", "uz", "en"))
}
