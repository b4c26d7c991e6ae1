package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
)

func TestRespondJSON(t *testing.T) {
	t.Run("sets content-type and status code correctly", func(t *testing.T) {
		w := httptest.NewRecorder()

		RespondJSON(w, 200, map[string]string{"message": "success"})

		if w.Code != 200 {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
		if w.Header().Get("Content-Type") != "application/json" {
			t.Errorf("Expected Content-Type 'application/json', got '%s'", w.Header().Get("Content-Type"))
		}
	})

	t.Run("handles nil data without body", func(t *testing.T) {
		w := httptest.NewRecorder()

		RespondJSON(w, 204, nil)

		if w.Code != 204 {
			t.Errorf("Expected status 204, got %d", w.Code)
		}
		if w.Body.Len() != 0 {
			t.Errorf("Expected empty body, got %q", w.Body.String())
		}
	})

	t.Run("handles un-encodable data gracefully", func(t *testing.T) {
		w := httptest.NewRecorder()

		// Channels cannot be JSON encoded
		RespondJSON(w, 200, map[string]any{"channel": make(chan int)})

		if w.Code != 200 {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
	})
}

func TestRespondError(t *testing.T) {
	t.Run("includes details when provided", func(t *testing.T) {
		w := httptest.NewRecorder()

		RespondError(w, 400, "validation failed", map[string]string{"goal": "required"})

		var resp struct {
			Error   string            `json:"error"`
			Details map[string]string `json:"details"`
		}
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if resp.Error != "validation failed" {
			t.Errorf("Expected error 'validation failed', got %q", resp.Error)
		}
		if resp.Details["goal"] != "required" {
			t.Errorf("Expected goal detail, got %v", resp.Details)
		}
	})

	t.Run("omits nil details", func(t *testing.T) {
		w := httptest.NewRecorder()

		RespondError(w, 404, "goal not found", nil)

		var raw map[string]any
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&raw)
		if _, ok := raw["details"]; ok {
			t.Errorf("Expected details to be omitted, got %v", raw)
		}
	})
}
