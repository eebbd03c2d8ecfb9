//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

func TestRemoteAPI_FullRun(t *testing.T) {
	baseURL := strings.TrimRight(strings.TrimSpace(os.Getenv("E2E_BASE_URL")), "/")
	if baseURL == "" {
		t.Skip("E2E_BASE_URL is required for the remote e2e run")
	}
	playerID := "e2e-" + time.Now().UTC().Format("20060102150405")
	client := &http.Client{Timeout: 30 * time.Second}

	var sessionID string

	t.Run("start creates a session", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodPost, baseURL+"/api/session/start", playerID, nil)
		if status != http.StatusCreated {
			t.Fatalf("start status=%d body=%s", status, string(body))
		}
		var resp map[string]any
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("unmarshal start: %v body=%s", err, string(body))
		}
		sessionID, _ = asMap(resp["session"])["id"].(string)
		if sessionID == "" {
			t.Fatalf("missing session id in %s", string(body))
		}
	})

	t.Run("start again resumes", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodPost, baseURL+"/api/session/start", playerID, nil)
		if status != http.StatusOK {
			t.Fatalf("resume status=%d body=%s", status, string(body))
		}
		var resp map[string]any
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("unmarshal resume: %v", err)
		}
		if got, _ := asMap(resp["session"])["id"].(string); got != sessionID {
			t.Fatalf("resumed session %q, want %q", got, sessionID)
		}
	})

	t.Run("intro narrates without advancing", func(t *testing.T) {
		status, body, err := doRequest(client, http.MethodGet, baseURL+"/api/session/"+sessionID+"/intro", playerID, nil)
		if err != nil {
			t.Fatalf("intro request: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("intro status=%d body=%s", status, string(body))
		}
		var resp map[string]any
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("unmarshal intro: %v", err)
		}
		if narration, _ := resp["narration"].(string); strings.TrimSpace(narration) == "" {
			t.Fatalf("empty intro narration: %s", string(body))
		}
	})

	t.Run("act advances the turn", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodPost, baseURL+"/api/session/"+sessionID+"/act", playerID, map[string]any{
			"action": "Step toward the old shrine",
		})
		if status != http.StatusOK {
			t.Fatalf("act status=%d body=%s", status, string(body))
		}
		var resp map[string]any
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("unmarshal act: %v", err)
		}
		roll := asMap(resp["roll"])
		if roll["total_roll"] == nil || roll["tier"] == nil {
			t.Fatalf("missing roll breakdown: %s", string(body))
		}
		if narration, _ := resp["narration"].(string); strings.TrimSpace(narration) == "" {
			t.Fatalf("empty turn narration")
		}
	})

	t.Run("replay returns the trail", func(t *testing.T) {
		status, body, err := doRequest(client, http.MethodGet, baseURL+"/api/session/"+sessionID+"/replay?limit=20", playerID, nil)
		if err != nil {
			t.Fatalf("replay request: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("replay status=%d body=%s", status, string(body))
		}
		var resp map[string]any
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("unmarshal replay: %v", err)
		}
		if len(asSlice(resp["events"])) == 0 {
			t.Fatalf("expected replay events, got %s", string(body))
		}
	})

	t.Run("end closes the session", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodPost, baseURL+"/api/session/"+sessionID+"/end", playerID, nil)
		if status != http.StatusOK {
			t.Fatalf("end status=%d body=%s", status, string(body))
		}
		var resp map[string]any
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("unmarshal end: %v", err)
		}
		if got, _ := asMap(resp["session"])["status"].(string); got != "ESCAPED" {
			t.Fatalf("status=%q, want ESCAPED", got)
		}
	})

	t.Run("kpi snapshot", func(t *testing.T) {
		status, body, err := doRequest(client, http.MethodGet, baseURL+"/ops/kpi", "", nil)
		if err != nil {
			t.Fatalf("kpi request: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("kpi status=%d body=%s", status, string(body))
		}
		var kpi map[string]any
		if err := json.Unmarshal(body, &kpi); err != nil {
			t.Fatalf("unmarshal kpi: %v", err)
		}
		if _, ok := kpi["turn_total"]; !ok {
			t.Fatalf("expected turn_total in kpi response: %s", string(body))
		}
	})
}

func mustJSON(t *testing.T, client *http.Client, method, url, playerID string, body map[string]any) (int, []byte) {
	t.Helper()
	status, respBody, err := doRequest(client, method, url, playerID, body)
	if err != nil {
		t.Fatalf("%s %s request failed: %v", method, url, err)
	}
	return status, respBody
}

func doRequest(client *http.Client, method, url, playerID string, body map[string]any) (int, []byte, error) {
	var payloadBytes []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		payloadBytes = b
	}

	var lastStatus int
	var lastBody []byte
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		var payload io.Reader
		if len(payloadBytes) > 0 {
			payload = bytes.NewReader(payloadBytes)
		}
		req, err := http.NewRequest(method, url, payload)
		if err != nil {
			return 0, nil, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if strings.TrimSpace(playerID) != "" {
			req.Header.Set("X-Player-ID", playerID)
		}
		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		lastStatus, lastBody, lastErr = resp.StatusCode, respBody, nil
		if resp.StatusCode >= 500 {
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		return resp.StatusCode, respBody, nil
	}
	if lastErr != nil {
		return 0, nil, lastErr
	}
	return lastStatus, lastBody, nil
}

func asMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func asSlice(v any) []any {
	if s, ok := v.([]any); ok {
		return s
	}
	return nil
}
