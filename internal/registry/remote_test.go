package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/saravenpi/knot/internal/model"
)

func TestRemoteListVersions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"version":"1.2.0","dependencies":[{"name":"left-pad","version":"^1.0.0"}]}]}`))
	}))
	defer server.Close()

	reg := NewRemote(server.URL)
	versions, err := reg.ListVersions(context.Background(), model.RemotePackageId("mypkg", ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(versions) != 1 || versions[0].Version.String() != "1.2.0" {
		t.Fatalf("got %v", versions)
	}
	if len(versions[0].Deps) != 1 || versions[0].Deps[0].ID.Name != "left-pad" {
		t.Fatalf("expected left-pad dependency, got %v", versions[0].Deps)
	}
}

func TestRemoteListVersionsNotFoundIsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	reg := NewRemote(server.URL)
	versions, err := reg.ListVersions(context.Background(), model.RemotePackageId("missing", ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(versions) != 0 {
		t.Fatalf("expected empty, got %v", versions)
	}
}

func TestRemoteMetadataNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	reg := NewRemote(server.URL)
	_, err := reg.Metadata(context.Background(), model.RemotePackageId("missing", ""), model.MustParseVersion("1.0.0"))
	if err == nil || err.Kind != model.ErrResolutionNotFound {
		t.Fatalf("expected ResolutionNotFound, got %v", err)
	}
}

func TestRemoteSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"packages":[{"name":"left-pad"},{"name":"right-pad"}]}`))
	}))
	defer server.Close()

	reg := NewRemote(server.URL)
	names, err := reg.Search(context.Background(), "pad")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("got %v", names)
	}
}
