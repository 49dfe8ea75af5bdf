package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/mirefeld/worldbuilder/internal/catalog"
	"github.com/mirefeld/worldbuilder/internal/nodeservice"
	"github.com/mirefeld/worldbuilder/internal/store"
)

// testEnv sets up a temp data dir, SQLite catalog, service, and router.
// authToken="" means disabled mode; a non-empty token enables token mode.
func testEnv(t *testing.T, authToken string) (*nodeservice.Service, http.Handler) {
	t.Helper()

	dataDir := t.TempDir()
	st, err := store.NewFS(dataDir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}

	dbFile, err := os.CreateTemp("", "wb-api-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := catalog.Open(dbFile.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	svc := nodeservice.NewService(st, db)
	router := NewRouter(svc, authToken != "", authToken, nil)
	return svc, router
}

func createNode(t *testing.T, router http.Handler, fields map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(fields)
	req := httptest.NewRequest(http.MethodPost, "/nodes", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateAndGetNode(t *testing.T) {
	_, router := testEnv(t, "")

	w := createNode(t, router, map[string]any{
		"name": "Minas Tirith", "type": "City", "parent": "gondor", "notes": "white city",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}
	var created NodeDetail
	_ = json.Unmarshal(w.Body.Bytes(), &created)
	if created.Key != "minas_tirith" {
		t.Errorf("key = %q, want minas_tirith", created.Key)
	}

	req := httptest.NewRequest(http.MethodGet, "/nodes/minas_tirith", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	var node NodeDetail
	_ = json.Unmarshal(w.Body.Bytes(), &node)
	if node.Type != "City" {
		t.Errorf("type = %q, want City", node.Type)
	}
	if node.Parent != "gondor" {
		t.Errorf("parent = %q, want gondor", node.Parent)
	}
	if node.Notes != "white city" {
		t.Errorf("notes = %q", node.Notes)
	}
}

func TestCreateDuplicate(t *testing.T) {
	_, router := testEnv(t, "")

	if w := createNode(t, router, map[string]any{"name": "dup"}); w.Code != http.StatusCreated {
		t.Fatalf("first create = %d", w.Code)
	}

	// Second create should 409.
	if w := createNode(t, router, map[string]any{"name": "dup"}); w.Code != http.StatusConflict {
		t.Errorf("duplicate create = %d, want 409", w.Code)
	}

	// force=true overwrites.
	if w := createNode(t, router, map[string]any{"name": "dup", "force": true}); w.Code != http.StatusCreated {
		t.Errorf("forced create = %d, want 201", w.Code)
	}
}

func TestCreateValidation(t *testing.T) {
	_, router := testEnv(t, "")

	// Missing name.
	if w := createNode(t, router, map[string]any{"type": "City"}); w.Code != http.StatusBadRequest {
		t.Errorf("create without name = %d, want 400", w.Code)
	}

	// Malformed JSON.
	req := httptest.NewRequest(http.MethodPost, "/nodes", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad JSON = %d, want 400", w.Code)
	}
}

func TestUpdateWithOptimisticLocking(t *testing.T) {
	_, router := testEnv(t, "")

	w := createNode(t, router, map[string]any{"name": "lock", "notes": "v1"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create = %d", w.Code)
	}
	var created NodeDetail
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	// Update with correct checksum.
	updateBody, _ := json.Marshal(map[string]string{"content": "Node\n-\nv2"})
	req := httptest.NewRequest(http.MethodPut, "/nodes/lock", bytes.NewReader(updateBody))
	req.Header.Set("If-Match", created.Checksum)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("update with correct checksum = %d, body = %s", w.Code, w.Body.String())
	}

	// Update with stale checksum → 409.
	req = httptest.NewRequest(http.MethodPut, "/nodes/lock", bytes.NewReader(updateBody))
	req.Header.Set("If-Match", created.Checksum) // stale now
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusConflict {
		t.Errorf("update with stale checksum = %d, want 409", w.Code)
	}
}

func TestUpdateWithoutIfMatch(t *testing.T) {
	_, router := testEnv(t, "")

	createNode(t, router, map[string]any{"name": "nolock", "notes": "v1"})

	// Update without If-Match should succeed (no locking enforced).
	updateBody, _ := json.Marshal(map[string]string{"content": "Node\n-\nv2"})
	req := httptest.NewRequest(http.MethodPut, "/nodes/nolock", bytes.NewReader(updateBody))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("update without If-Match = %d, want 200", w.Code)
	}
}

func TestDeleteNode(t *testing.T) {
	_, router := testEnv(t, "")

	createNode(t, router, map[string]any{"name": "bye"})

	req := httptest.NewRequest(http.MethodDelete, "/nodes/bye", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Errorf("delete = %d, want 204", w.Code)
	}

	// GET should now 404.
	req = httptest.NewRequest(http.MethodGet, "/nodes/bye", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete = %d, want 404", w.Code)
	}
}

func TestListNodes(t *testing.T) {
	_, router := testEnv(t, "")

	createNode(t, router, map[string]any{"name": "gondor", "type": "Kingdom"})
	createNode(t, router, map[string]any{"name": "rohan", "type": "Kingdom"})
	createNode(t, router, map[string]any{"name": "edoras", "type": "City", "parent": "rohan"})

	req := httptest.NewRequest(http.MethodGet, "/nodes", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("list = %d", w.Code)
	}
	var resp NodeListResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Total != 3 {
		t.Errorf("total = %d, want 3", resp.Total)
	}

	// Type filter is case-insensitive.
	req = httptest.NewRequest(http.MethodGet, "/nodes?type=kingdom", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Total != 2 {
		t.Errorf("filtered total = %d, want 2", resp.Total)
	}
}

func TestSearchEndpoint(t *testing.T) {
	_, router := testEnv(t, "")

	createNode(t, router, map[string]any{"name": "find", "notes": "uniquetoken here"})

	req := httptest.NewRequest(http.MethodGet, "/search?q=uniquetoken", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("search = %d, body = %s", w.Code, w.Body.String())
	}
	var resp SearchResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Results) != 1 {
		t.Fatalf("search results = %d, want 1", len(resp.Results))
	}
	if resp.Results[0].Key != "find" {
		t.Errorf("result key = %q, want find", resp.Results[0].Key)
	}

	// Missing query parameter.
	req = httptest.NewRequest(http.MethodGet, "/search", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("search without q = %d, want 400", w.Code)
	}
}

func TestTreeEndpoint(t *testing.T) {
	_, router := testEnv(t, "")

	createNode(t, router, map[string]any{"name": "rohan", "type": "Kingdom"})
	createNode(t, router, map[string]any{"name": "edoras", "type": "City", "parent": "rohan"})

	req := httptest.NewRequest(http.MethodGet, "/tree?root=rohan", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("tree = %d, body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("content type = %q", ct)
	}
	want := "rohan [Kingdom]\n└─ edoras [City]\n"
	if w.Body.String() != want {
		t.Errorf("tree output = %q, want %q", w.Body.String(), want)
	}

	// Unknown root → 404.
	req = httptest.NewRequest(http.MethodGet, "/tree?root=mordor", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown root = %d, want 404", w.Code)
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	_, router := testEnv(t, "secret123")

	body, _ := json.Marshal(map[string]any{"name": "auth"})
	req := httptest.NewRequest(http.MethodPost, "/nodes", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer secret123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Errorf("authed create = %d, want 201", w.Code)
	}
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	_, router := testEnv(t, "secret123")

	req := httptest.NewRequest(http.MethodGet, "/nodes", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unauthed = %d, want 401", w.Code)
	}
}

func TestAuthMiddleware_WrongToken(t *testing.T) {
	_, router := testEnv(t, "secret123")

	req := httptest.NewRequest(http.MethodGet, "/nodes", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong token = %d, want 401", w.Code)
	}
}

func TestAuthMiddleware_Disabled(t *testing.T) {
	_, router := testEnv(t, "")

	req := httptest.NewRequest(http.MethodGet, "/nodes", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("no auth = %d, want 200", w.Code)
	}
}

func TestGetNode_NotFound(t *testing.T) {
	_, router := testEnv(t, "")

	req := httptest.NewRequest(http.MethodGet, "/nodes/nope", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing node = %d, want 404", w.Code)
	}
}
