package scoringapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"guardian_notifier/internal/domain/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_SubmitScoringRequest(t *testing.T) {
	var got scoring.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, calculatePath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", time.Second)
	err := c.SubmitScoringRequest(context.Background(), scoring.Request{
		StudentID: "5",
		Type:      scoring.TypeAttendance,
		Lesson:    "L1",
		Data:      map[string]interface{}{"status": "absent", "previousStatus": nil},
	})
	require.NoError(t, err)
	assert.Equal(t, "5", got.StudentID)
	assert.Equal(t, scoring.TypeAttendance, got.Type)
	assert.Equal(t, "absent", got.Data["status"])
	assert.Contains(t, got.Data, "previousStatus")
}

func TestClient_SubmitScoringRequestError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "scoring disabled", http.StatusBadRequest)
	}))
	defer srv.Close()

	err := NewClient(srv.URL, time.Second).SubmitScoringRequest(context.Background(), scoring.Request{Type: scoring.TypeHomework})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "scoring disabled")
}

func TestClient_GetLastHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, historyPath, r.URL.Path)
		var req historyRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		w.Header().Set("Content-Type", "application/json")
		if req.Type == scoring.TypeHomework {
			_, _ = w.Write([]byte(`{"found":false}`))
			return
		}
		_, _ = w.Write([]byte(`{"found":true,"history":{"data":{"status":"present"}}}`))
	}))
	defer srv.Close()
	c := NewClient(srv.URL, time.Second)

	entry, err := c.GetLastHistory(context.Background(), "5", scoring.TypeAttendance, "L1")
	require.NoError(t, err)
	assert.Equal(t, "present", entry.Data["status"])
	assert.Equal(t, "L1", entry.Lesson)

	_, err = c.GetLastHistory(context.Background(), "5", scoring.TypeHomework, "L1")
	assert.ErrorIs(t, err, scoring.ErrHistoryNotFound)
}

func TestClient_GetLastHistoryBadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).GetLastHistory(context.Background(), "5", scoring.TypeAttendance, "L1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, scoring.ErrHistoryNotFound)
}
