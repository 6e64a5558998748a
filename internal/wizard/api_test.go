package wizard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/medmatch/intake/internal/shared/config"
	"github.com/medmatch/intake/internal/snapshot"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	authCfg := config.AuthConfig{JWTSecret: "test-secret", SessionTTLHours: 1}
	manager := NewManager(
		config.SnapshotConfig{KeyPrefix: "test"},
		func(ctx context.Context, key string) (snapshot.Store, error) {
			return snapshot.NewMemoryStore(key), nil
		},
	)
	handler := NewHandler(manager, nil, authCfg)

	srv := httptest.NewServer(handler.Routes())
	t.Cleanup(srv.Close)
	return srv
}

func startSession(t *testing.T, srv *httptest.Server) string {
	t.Helper()

	resp, err := http.Post(srv.URL+"/sessions", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("start session returned %d", resp.StatusCode)
	}

	var body struct {
		Token   string `json:"token"`
		Section string `json:"section"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Token == "" {
		t.Fatal("no session token issued")
	}
	if body.Section != "demographics" {
		t.Fatalf("session started at %q", body.Section)
	}
	return body.Token
}

func doRequest(t *testing.T, srv *httptest.Server, token, method, path string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestAPIRequiresSessionToken(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, srv, "", http.MethodGet, "/record", nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("unauthenticated request returned %d", resp.StatusCode)
	}
}

func TestAPIRejectsGarbageToken(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, srv, "not-a-token", http.MethodGet, "/record", nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("garbage token returned %d", resp.StatusCode)
	}
}

func TestAPISetFieldDerivesDependents(t *testing.T) {
	srv := newTestServer(t)
	token := startSession(t, srv)

	resp := doRequest(t, srv, token, http.MethodPut, "/record/field", map[string]any{
		"path":  "coverageType",
		"value": "me_spouse",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("set field returned %d", resp.StatusCode)
	}

	var rec struct {
		Dependents []struct {
			Relationship string `json:"relationship"`
		} `json:"dependents"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		t.Fatal(err)
	}
	if len(rec.Dependents) != 1 || rec.Dependents[0].Relationship != "spouse" {
		t.Errorf("dependents after coverage change: %+v", rec.Dependents)
	}
}

func TestAPISetFieldRejectsUnknownPath(t *testing.T) {
	srv := newTestServer(t)
	token := startSession(t, srv)

	resp := doRequest(t, srv, token, http.MethodPut, "/record/field", map[string]any{
		"path":  "favouriteColour",
		"value": "blue",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown path returned %d", resp.StatusCode)
	}
}

func TestAPINavigation(t *testing.T) {
	srv := newTestServer(t)
	token := startSession(t, srv)

	resp := doRequest(t, srv, token, http.MethodPost, "/navigation/advance", nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("advance returned %d", resp.StatusCode)
	}

	var nav struct {
		Section  string  `json:"section"`
		Progress float64 `json:"progress"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&nav); err != nil {
		t.Fatal(err)
	}
	if nav.Section != "health-status" {
		t.Errorf("advanced to %q", nav.Section)
	}

	resp2 := doRequest(t, srv, token, http.MethodPost, "/navigation/jump", map[string]any{
		"section": "preferences",
	})
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("jump returned %d", resp2.StatusCode)
	}

	resp3 := doRequest(t, srv, token, http.MethodPost, "/navigation/jump", map[string]any{
		"section": "checkout",
	})
	defer resp3.Body.Close()
	if resp3.StatusCode != http.StatusBadRequest {
		t.Errorf("jump to unknown section returned %d", resp3.StatusCode)
	}
}

func TestAPISubmitIncompleteRecord(t *testing.T) {
	srv := newTestServer(t)
	token := startSession(t, srv)

	resp := doRequest(t, srv, token, http.MethodPost, "/submit", nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("incomplete submit returned %d", resp.StatusCode)
	}

	var body struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Code != "VALIDATION_ERROR" {
		t.Errorf("error code = %q", body.Code)
	}
	if _, ok := body.Details["personalDetails.fullName"]; !ok {
		t.Errorf("details missing full name error: %v", body.Details)
	}
}

func TestAPIFullSubmissionFlow(t *testing.T) {
	srv := newTestServer(t)
	token := startSession(t, srv)

	fields := []struct {
		path  string
		value any
	}{
		{"personalDetails.fullName", "Nomsa Dlamini"},
		{"personalDetails.idNumber", "8001015009087"},
		{"personalDetails.dateOfBirth", "1980-01-01"},
		{"personalDetails.gender", "female"},
		{"personalDetails.email", "nomsa@example.com"},
		{"personalDetails.phone", "0821234567"},
		{"personalDetails.address", "12 Long Street, Cape Town"},
		{"locationConfirmed", true},
	}
	for _, f := range fields {
		resp := doRequest(t, srv, token, http.MethodPut, "/record/field", map[string]any{
			"path":  f.path,
			"value": f.value,
		})
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("set %s returned %d", f.path, resp.StatusCode)
		}
	}

	resp := doRequest(t, srv, token, http.MethodPost, "/submit", nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("submit returned %d", resp.StatusCode)
	}

	var body struct {
		Record struct {
			PersonalDetails struct {
				FullName string `json:"fullName"`
			} `json:"personalDetails"`
		} `json:"record"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Record.PersonalDetails.FullName != "Nomsa Dlamini" {
		t.Errorf("completed record holds %q", body.Record.PersonalDetails.FullName)
	}

	// the session's record is reset after a successful submission
	resp2 := doRequest(t, srv, token, http.MethodGet, "/record", nil)
	defer resp2.Body.Close()
	var rec struct {
		HasStarted bool `json:"hasStarted"`
	}
	if err := json.NewDecoder(resp2.Body).Decode(&rec); err != nil {
		t.Fatal(err)
	}
	if rec.HasStarted {
		t.Error("record survived submission")
	}
}

func TestAPIProcedureEndpoints(t *testing.T) {
	srv := newTestServer(t)
	token := startSession(t, srv)

	resp := doRequest(t, srv, token, http.MethodPost, "/record/procedures", nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add procedure returned %d", resp.StatusCode)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	resp2 := doRequest(t, srv, token, http.MethodDelete,
		fmt.Sprintf("/record/procedures/%s", created.ID), nil)
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusNoContent {
		t.Errorf("remove procedure returned %d", resp2.StatusCode)
	}
}

func TestAPIToggleCondition(t *testing.T) {
	srv := newTestServer(t)
	token := startSession(t, srv)

	resp := doRequest(t, srv, token, http.MethodPost, "/record/conditions/toggle", map[string]any{
		"name": "Diabetes Mellitus Type 2",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("toggle returned %d", resp.StatusCode)
	}

	var body struct {
		ChronicConditions []string `json:"chronicConditions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if len(body.ChronicConditions) != 1 || body.ChronicConditions[0] != "Diabetes Mellitus Type 2" {
		t.Errorf("conditions = %v", body.ChronicConditions)
	}
}
