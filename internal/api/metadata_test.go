package api

import (
	"net/http"
	"testing"

	"github.com/dongju93/cocktail-maker/internal/auth"
)

func TestMetadataEndpoints(t *testing.T) {
	s := newTestServer(t)
	adminToken := mintAccessToken(t, s, "admin1", []auth.Role{auth.RoleAdmin})
	userToken := mintAccessToken(t, s, "user01", []auth.Role{auth.RoleUser})

	t.Run("create requires admin", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodPost, "/api/v1/metadata/spirits/aroma", userToken, `{"names":["smoke"]}`)
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
		}
	})

	t.Run("create and list", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodPost, "/api/v1/metadata/spirits/aroma", adminToken, `{"names":["smoke","peat","honey"]}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
		}

		rec = doRequest(t, s, http.MethodGet, "/api/v1/metadata/spirits/aroma", userToken, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("list status = %d, want %d", rec.Code, http.StatusOK)
		}

		resp := decodeResponse(t, rec)
		entries, ok := resp.Data.([]any)
		if !ok {
			t.Fatalf("data = %T, want array", resp.Data)
		}
		if len(entries) != 3 {
			t.Errorf("entries = %d, want 3", len(entries))
		}
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodPost, "/api/v1/metadata/wine/aroma", adminToken, `{"names":["oak"]}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodPost, "/api/v1/metadata/spirits/colour", adminToken, `{"names":["gold"]}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("rejects empty names", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodPost, "/api/v1/metadata/spirits/aroma", adminToken, `{"names":[]}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("delete by id", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodDelete, "/api/v1/metadata/1", adminToken, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("delete status = %d, want %d", rec.Code, http.StatusOK)
		}

		rec = doRequest(t, s, http.MethodDelete, "/api/v1/metadata/1", adminToken, "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("repeat delete status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})

	t.Run("delete rejects non-numeric id", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodDelete, "/api/v1/metadata/abc", adminToken, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}
