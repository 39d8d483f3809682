package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(Config{ServerURL: srv.URL})
	require.NoError(t, err)

	return client
}

func writeEnvelope(w http.ResponseWriter, status int, success bool, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": success,
		"message": message,
		"data":    data,
	})
}

func TestClient_Envelope(t *testing.T) {
	t.Run("decodes data on success", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, http.StatusOK, true, "", []map[string]any{
				{"id": "v1", "title": "first"},
			})
		}))

		videos, err := client.ListVideos(context.Background(), "", ListVideosOptions{})
		require.NoError(t, err)
		require.Len(t, videos, 1)
		assert.Equal(t, "v1", videos[0].ID)
		assert.Equal(t, "first", videos[0].Title)
	})

	t.Run("success false becomes an application error", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, http.StatusOK, false, "video not found", nil)
		}))

		_, err := client.GetVideo(context.Background(), "", "v404")
		require.Error(t, err)
		assert.True(t, IsApplicationError(err))
		assert.False(t, IsUnauthorized(err))
		assert.Contains(t, err.Error(), "video not found")
	})

	t.Run("401 is an authorization failure", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, http.StatusUnauthorized, false, "token expired", nil)
		}))

		_, err := client.Notifications(context.Background(), "stale-token")
		require.Error(t, err)
		assert.True(t, IsUnauthorized(err))
	})

	t.Run("transport failure is not an application error", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close() // server gone before the request

		client, err := New(Config{ServerURL: srv.URL})
		require.NoError(t, err)

		_, err = client.ListVideos(context.Background(), "", ListVideosOptions{})
		require.Error(t, err)
		assert.False(t, IsApplicationError(err))
	})
}

func TestClient_AuthorizationHeader(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(w, http.StatusOK, true, "", []Video{})
	}))

	_, err := client.ListVideos(context.Background(), "raw-token-123", ListVideosOptions{})
	require.NoError(t, err)

	// The platform expects the raw token, no Bearer prefix
	assert.Equal(t, "raw-token-123", gotAuth)
}

func TestClient_Login(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req["email"] != "ann@example.com" || req["password"] != "hunter2" {
			writeEnvelope(w, http.StatusUnauthorized, false, "invalid credentials", nil)
			return
		}

		writeEnvelope(w, http.StatusOK, true, "", map[string]string{"token": "issued-token"})
	}))

	token, err := client.Login(context.Background(), "ann@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "issued-token", token)

	_, err = client.Login(context.Background(), "ann@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
}

func TestClient_UploadVideo(t *testing.T) {
	t.Run("streams multipart form with metadata", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, "cat video", r.FormValue("title"))
			assert.Equal(t, "a cat", r.FormValue("description"))

			file, header, err := r.FormFile("video")
			require.NoError(t, err)
			defer file.Close()

			assert.Equal(t, "cat.mp4", header.Filename)
			content, err := io.ReadAll(file)
			require.NoError(t, err)
			assert.Equal(t, "fake video bytes", string(content))

			writeEnvelope(w, http.StatusOK, true, "", Video{ID: "v-new", Title: "cat video"})
		}))

		var lastWritten int64
		video, err := client.UploadVideo(context.Background(), "tok", UploadRequest{
			Title:       "cat video",
			Description: "a cat",
			Filename:    "cat.mp4",
			Content:     strings.NewReader("fake video bytes"),
			Size:        int64(len("fake video bytes")),
		}, func(written, total int64) {
			lastWritten = written
		})
		require.NoError(t, err)
		assert.Equal(t, "v-new", video.ID)
		assert.Equal(t, int64(len("fake video bytes")), lastWritten)
	})

	t.Run("requires a title and content", func(t *testing.T) {
		client := newTestClient(t, http.NotFoundHandler())

		_, err := client.UploadVideo(context.Background(), "tok", UploadRequest{Title: "x"}, nil)
		require.Error(t, err)

		_, err = client.UploadVideo(context.Background(), "tok", UploadRequest{Content: strings.NewReader("x")}, nil)
		require.Error(t, err)
	})
}
