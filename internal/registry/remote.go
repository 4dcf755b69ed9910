package registry

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sdboyer/constext"

	"github.com/saravenpi/knot/internal/fsutil"
	"github.com/saravenpi/knot/internal/model"
)

// callTimeout is the default per-call registry deadline named in §5.
const callTimeout = 30 * time.Second

// Remote is the `source=Remote` registry: an HTTP client against the
// four endpoints named in §4.4, grounded on
// original_source/apps/cli/src/dependency/registry.rs's
// RemotePackageRegistry (there built on reqwest; here on net/http,
// since the teacher and the rest of the pack never reach for a
// third-party HTTP client for simple request/response calls).
type Remote struct {
	baseURL   string
	client    *http.Client
	authToken string
}

// NewRemote builds a Remote registry against baseURL with the default
// 30-second per-call timeout named in §5.
func NewRemote(baseURL string) *Remote {
	return &Remote{baseURL: strings.TrimRight(baseURL, "/"), client: &http.Client{Timeout: 30 * time.Second}}
}

func (r *Remote) WithAuth(token string) *Remote {
	r.authToken = token
	return r
}

// request issues a GET against path under a context that honors both
// the caller's own cancellation and a server-side per-call deadline,
// combined via constext.Cons the way the teacher's gps source manager
// joins a workspace-wide context with a per-request one.
func (r *Remote) request(ctx context.Context, path string) (*http.Response, error) {
	deadline, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()
	combined, cancelCombined := constext.Cons(ctx, deadline)
	defer cancelCombined()

	req, err := http.NewRequestWithContext(combined, http.MethodGet, r.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	if r.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+r.authToken)
	}
	return r.client.Do(req)
}

type versionsResponse struct {
	Data []remoteVersion `json:"data"`
}

type remoteVersion struct {
	Version         string            `json:"version"`
	Dependencies    []remoteDependency `json:"dependencies"`
	DevDependencies []remoteDependency `json:"dev_dependencies"`
	Metadata        *remoteMetadata   `json:"metadata"`
}

type remoteDependency struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Optional bool   `json:"optional"`
}

type remoteMetadata struct {
	Description string            `json:"description"`
	Author      string            `json:"author"`
	License     string            `json:"license"`
	Repository  string            `json:"repository"`
	Keywords    []string          `json:"keywords"`
	Exports     map[string]string `json:"exports"`
	Features    []string          `json:"features"`
	Integrity   string            `json:"integrity"`
}

func (r *Remote) ListVersions(ctx context.Context, id model.PackageId) ([]model.PackageVersion, *model.Error) {
	name := strings.TrimPrefix(id.Name, "@")
	resp, err := r.request(ctx, "/api/packages/"+url.PathEscape(name)+"/versions")
	if err != nil {
		return nil, model.NetworkError(id, err.Error(), isTimeout(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode/100 != 2 {
		return nil, model.NetworkError(id, fmt.Sprintf("unexpected status %d", resp.StatusCode), false)
	}

	var body versionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, model.NetworkError(id, "failed to parse response: "+err.Error(), false)
	}

	out := make([]model.PackageVersion, 0, len(body.Data))
	for _, rv := range body.Data {
		version, verr := model.ParseVersion(rv.Version)
		if verr != nil {
			return nil, model.NetworkError(id, "invalid version in response: "+verr.Error(), false)
		}
		deps, derr := remoteDependencySpecs(rv.Dependencies, false)
		if derr != nil {
			return nil, derr
		}
		devDeps, derr := remoteDependencySpecs(rv.DevDependencies, true)
		if derr != nil {
			return nil, derr
		}
		out = append(out, model.PackageVersion{
			ID:       id,
			Version:  version,
			Deps:     deps,
			DevDeps:  devDeps,
			Metadata: remoteMetadataTo(rv.Metadata),
		})
	}
	return out, nil
}

func remoteDependencySpecs(deps []remoteDependency, devOnly bool) ([]model.DependencySpec, *model.Error) {
	out := make([]model.DependencySpec, 0, len(deps))
	for _, d := range deps {
		req, err := model.ParseVersionRequirement(d.Version)
		if err != nil {
			return nil, model.ConfigurationError("dependencies", err.Error(), "pkg-name@^1.0.0")
		}
		out = append(out, model.DependencySpec{
			ID:          model.NewPackageId(d.Name),
			Requirement: req,
			Optional:    d.Optional,
			DevOnly:     devOnly,
		})
	}
	return out, nil
}

func remoteMetadataTo(m *remoteMetadata) model.PackageMetadata {
	if m == nil {
		return model.PackageMetadata{}
	}
	return model.PackageMetadata{
		Description: m.Description,
		Author:      m.Author,
		License:     m.License,
		Repository:  m.Repository,
		Keywords:    m.Keywords,
		Exports:     m.Exports,
		Features:    m.Features,
		Integrity:   m.Integrity,
	}
}

func (r *Remote) Metadata(ctx context.Context, id model.PackageId, v model.Version) (model.PackageMetadata, *model.Error) {
	name := strings.TrimPrefix(id.Name, "@")
	resp, err := r.request(ctx, "/api/packages/"+url.PathEscape(name)+"/"+url.PathEscape(v.String()))
	if err != nil {
		return model.PackageMetadata{}, model.NetworkError(id, err.Error(), isTimeout(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return model.PackageMetadata{}, model.PackageNotFoundError(id, []string{"remote registry: " + r.baseURL}, nil)
	}
	if resp.StatusCode/100 != 2 {
		return model.PackageMetadata{}, model.NetworkError(id, fmt.Sprintf("unexpected status %d", resp.StatusCode), false)
	}

	var md remoteMetadata
	if err := json.NewDecoder(resp.Body).Decode(&md); err != nil {
		return model.PackageMetadata{}, model.NetworkError(id, "failed to parse metadata: "+err.Error(), false)
	}
	return remoteMetadataTo(&md), nil
}

func (r *Remote) Materialize(ctx context.Context, id model.PackageId, v model.Version, dest string) *model.Error {
	name := strings.TrimPrefix(id.Name, "@")
	resp, err := r.request(ctx, "/api/packages/download/"+url.PathEscape(name)+"/"+url.PathEscape(v.String()))
	if err != nil {
		return model.NetworkError(id, err.Error(), isTimeout(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return model.PackageNotFoundError(id, []string{"remote registry: " + r.baseURL}, nil)
	}
	if resp.StatusCode/100 != 2 {
		return model.NetworkError(id, fmt.Sprintf("download failed with status %d", resp.StatusCode), false)
	}

	if rmErr := fsutil.RemoveTreeAtomic(dest); rmErr != nil {
		return model.IOError("remove", dest, rmErr)
	}
	if mkErr := fsutil.EnsureDir(dest); mkErr != nil {
		return model.IOError("mkdir", dest, mkErr)
	}
	if extractErr := extractTarGz(resp.Body, dest); extractErr != nil {
		return model.IOError("extract", dest, extractErr)
	}
	return nil
}

func (r *Remote) Search(ctx context.Context, query string) ([]string, *model.Error) {
	resp, err := r.request(ctx, "/api/search?q="+url.QueryEscape(query))
	if err != nil {
		return nil, model.NetworkError(model.LocalPackageId("search"), err.Error(), isTimeout(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, nil
	}

	var body struct {
		Packages []struct {
			Name string `json:"name"`
		} `json:"packages"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, model.NetworkError(model.LocalPackageId("search"), "failed to parse search response: "+err.Error(), false)
	}

	names := make([]string, 0, len(body.Packages))
	for _, p := range body.Packages {
		names = append(names, p.Name)
	}
	if len(names) > 5 {
		names = names[:5]
	}
	return names, nil
}

// extractTarGz unpacks a gzip-compressed tar stream under dest. The
// teacher and pack show no third-party tar/gzip reader that does
// anything archive/tar + compress/gzip don't already do cleanly for a
// flat extract (see DESIGN.md).
func extractTarGz(body io.Reader, dest string) error {
	gz, err := gzip.NewReader(body)
	if err != nil {
		return err
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		target := filepath.Join(dest, hdr.Name)
		if !strings.HasPrefix(target, filepath.Clean(dest)+string(os.PathSeparator)) && target != filepath.Clean(dest) {
			return fmt.Errorf("tar entry %q escapes destination", hdr.Name)
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}
			f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(hdr.Mode))
			if err != nil {
				return err
			}
			if _, err := io.Copy(f, tr); err != nil {
				f.Close()
				return err
			}
			f.Close()
		}
	}
}

func isTimeout(err error) bool {
	type timeouter interface{ Timeout() bool }
	if t, ok := err.(timeouter); ok {
		return t.Timeout()
	}
	return false
}
