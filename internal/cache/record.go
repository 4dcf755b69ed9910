package cache

import (
	"encoding/json"

	"github.com/saravenpi/knot/internal/model"
)

// record is the on-disk/JSON-friendly shadow of a model.CacheEntry.
// model.PackageId is a struct and can't be a JSON object key directly,
// so the resolved set is flattened to a slice for serialization and
// rebuilt into a map on load.
type record struct {
	Resolved        []resolvedEntry  `json:"resolved"`
	Order           []packageIDJSON  `json:"order"`
	Conflicts       []conflictJSON   `json:"conflicts"`
	Warnings        []string         `json:"warnings"`
	LockfileHash    string           `json:"lockfile_hash"`
	CreatedAt       int64            `json:"created_at"`
	LastAccess      int64            `json:"last_access"`
	AccessCount     uint64           `json:"access_count"`
	ApproxSizeBytes int              `json:"approx_size_bytes"`
}

type packageIDJSON struct {
	Name       string `json:"name"`
	Source     string `json:"source"`
	RegistryID string `json:"registry_id,omitempty"`
}

type resolvedEntry struct {
	ID         packageIDJSON `json:"id"`
	Version    string        `json:"version"`
	SourcePath string        `json:"source_path,omitempty"`

	Description string   `json:"description,omitempty"`
	Author      string   `json:"author,omitempty"`
	License     string   `json:"license,omitempty"`
	Repository  string   `json:"repository,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	Features    []string `json:"features,omitempty"`
}

type conflictJSON struct {
	Package      packageIDJSON `json:"package"`
	Requirements []string      `json:"requirements"`
}

func toPackageIDJSON(id model.PackageId) packageIDJSON {
	return packageIDJSON{Name: id.Name, Source: id.Source.String(), RegistryID: id.RegistryID}
}

func fromPackageIDJSON(j packageIDJSON) model.PackageId {
	if j.Source == "remote" {
		return model.RemotePackageId(j.Name, j.RegistryID)
	}
	return model.LocalPackageId(j.Name)
}

func toRecord(e model.CacheEntry) record {
	r := record{
		Order:           make([]packageIDJSON, len(e.Result.Order)),
		Conflicts:       make([]conflictJSON, len(e.Result.Conflicts)),
		Warnings:        e.Result.Warnings,
		LockfileHash:    e.Result.LockfileHash,
		CreatedAt:       e.CreatedAt,
		LastAccess:      e.LastAccess,
		AccessCount:     e.AccessCount,
		ApproxSizeBytes: e.ApproxSizeBytes,
	}
	for i, id := range e.Result.Order {
		r.Order[i] = toPackageIDJSON(id)
	}
	for i, c := range e.Result.Conflicts {
		r.Conflicts[i] = conflictJSON{Package: toPackageIDJSON(c.Package), Requirements: c.Requirements}
	}
	for id, pv := range e.Result.Resolved {
		r.Resolved = append(r.Resolved, resolvedEntry{
			ID:          toPackageIDJSON(id),
			Version:     pv.Version.String(),
			SourcePath:  pv.SourcePath,
			Description: pv.Metadata.Description,
			Author:      pv.Metadata.Author,
			License:     pv.Metadata.License,
			Repository:  pv.Metadata.Repository,
			Keywords:    pv.Metadata.Keywords,
			Features:    pv.Metadata.Features,
		})
	}
	return r
}

func fromRecord(r record) (model.CacheEntry, error) {
	resolved := make(map[model.PackageId]model.PackageVersion, len(r.Resolved))
	for _, re := range r.Resolved {
		id := fromPackageIDJSON(re.ID)
		version, err := model.ParseVersion(re.Version)
		if err != nil {
			return model.CacheEntry{}, err
		}
		resolved[id] = model.PackageVersion{
			ID:         id,
			Version:    version,
			SourcePath: re.SourcePath,
			Metadata: model.PackageMetadata{
				Description: re.Description,
				Author:      re.Author,
				License:     re.License,
				Repository:  re.Repository,
				Keywords:    re.Keywords,
				Features:    re.Features,
			},
		}
	}

	order := make([]model.PackageId, len(r.Order))
	for i, j := range r.Order {
		order[i] = fromPackageIDJSON(j)
	}
	conflicts := make([]model.Conflict, len(r.Conflicts))
	for i, c := range r.Conflicts {
		conflicts[i] = model.Conflict{Package: fromPackageIDJSON(c.Package), Requirements: c.Requirements}
	}

	return model.CacheEntry{
		Result: model.ResolutionResult{
			Resolved:     resolved,
			Order:        order,
			Conflicts:    conflicts,
			Warnings:     r.Warnings,
			LockfileHash: r.LockfileHash,
		},
		CreatedAt:       r.CreatedAt,
		LastAccess:      r.LastAccess,
		AccessCount:     r.AccessCount,
		ApproxSizeBytes: r.ApproxSizeBytes,
	}, nil
}

func marshalEntry(e model.CacheEntry) ([]byte, error) {
	return json.MarshalIndent(toRecord(e), "", "  ")
}

func unmarshalEntry(data []byte) (model.CacheEntry, error) {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return model.CacheEntry{}, err
	}
	return fromRecord(r)
}
