package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/varun-a1/odlparent/pkg/closure"
	"github.com/varun-a1/odlparent/pkg/errors"
	"github.com/varun-a1/odlparent/pkg/feature"
)

const rootXML = `<features name="root">
  <repository>mvn:org.test/child/1.0/xml/features</repository>
  <feature name="f1" version="1.0">
    <bundle>mvn:org.test/bundle-a/1.0</bundle>
  </feature>
</features>`

const childXML = `<features name="child">
  <feature name="f2" version="1.0">
    <bundle>mvn:org.test/bundle-b/1.0</bundle>
  </feature>
</features>`

func testServer(t *testing.T) *Server {
	t.Helper()
	loader := closure.LoaderFunc(func(_ context.Context, coordinate string) (*feature.Features, error) {
		if coordinate == "org.test:child:xml:features:1.0" {
			return feature.Parse(coordinate, strings.NewReader(childXML))
		}
		return nil, errors.New(errors.ErrCodeUnresolvableCoordinate, "unknown coordinate %s", coordinate)
	})
	return NewServer(closure.NewResolver(loader, nil), nil)
}

func writeDescriptor(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing descriptor: %v", err)
	}
	return path
}

func TestHealthz(t *testing.T) {
	srv := testServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want %q", body["status"], "ok")
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("expected X-Request-Id header")
	}
}

func TestClosureEndpoint(t *testing.T) {
	srv := testServer(t)
	path := writeDescriptor(t, "root.xml", rootXML)

	body, _ := json.Marshal(map[string][]string{"paths": {path}})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/closure", strings.NewReader(string(body))))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var resp closureResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Descriptors) != 1 || resp.Descriptors[0].Name != "child" {
		t.Errorf("descriptors = %+v, want single child descriptor", resp.Descriptors)
	}
	want := []string{"org.test:child:xml:features:1.0"}
	if len(resp.Visited) != len(want) || resp.Visited[0] != want[0] {
		t.Errorf("visited = %v, want %v", resp.Visited, want)
	}
}

func TestClosureEndpointMissingDescriptor(t *testing.T) {
	srv := testServer(t)

	body, _ := json.Marshal(map[string][]string{"paths": {"/does/not/exist.xml"}})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/closure", strings.NewReader(string(body))))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Error.Code != string(errors.ErrCodeNotFound) {
		t.Errorf("error code = %q, want %q", resp.Error.Code, errors.ErrCodeNotFound)
	}
}

func TestClosureEndpointBadRequest(t *testing.T) {
	srv := testServer(t)

	cases := []struct {
		name string
		body string
	}{
		{"invalid json", "{"},
		{"empty paths", `{"paths":[]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/closure", strings.NewReader(tc.body)))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestCoordsEndpoint(t *testing.T) {
	srv := testServer(t)
	path := writeDescriptor(t, "root.xml", rootXML)

	body, _ := json.Marshal(map[string]string{"path": path})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/coords", strings.NewReader(string(body))))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var resp coordsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Name != "root" {
		t.Errorf("name = %q, want %q", resp.Name, "root")
	}
	want := []string{"org.test:child:xml:features:1.0", "org.test:bundle-a:1.0"}
	if len(resp.Coordinates) != len(want) {
		t.Fatalf("coordinates = %v, want %v", resp.Coordinates, want)
	}
	for i := range want {
		if resp.Coordinates[i] != want[i] {
			t.Errorf("coordinates[%d] = %q, want %q", i, resp.Coordinates[i], want[i])
		}
	}
}

func TestCoordsEndpointMissingPath(t *testing.T) {
	srv := testServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/coords", strings.NewReader(`{}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
