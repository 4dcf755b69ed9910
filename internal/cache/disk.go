package cache

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/theckman/go-flock"

	"github.com/saravenpi/knot/internal/fsutil"
	"github.com/saravenpi/knot/internal/model"
)

// diskTier is the content-addressed disk fallback: one JSON file per
// cache key under <root>/resolutions/<key>.json, writes guarded by a
// flock so two knot processes sharing a cache directory never
// interleave a partial write (§4.5 "concurrent access").
type diskTier struct {
	root string
}

func newDiskTier(root string) *diskTier {
	return &diskTier{root: filepath.Join(root, "resolutions")}
}

func (d *diskTier) path(key string) string {
	return filepath.Join(d.root, key+".json")
}

func (d *diskTier) lockPath(key string) string {
	return filepath.Join(d.root, key+".lock")
}

func (d *diskTier) get(key string) (model.CacheEntry, bool, error) {
	data, err := os.ReadFile(d.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return model.CacheEntry{}, false, nil
		}
		return model.CacheEntry{}, false, errors.Wrapf(err, "reading cache entry %s", key)
	}
	entry, err := unmarshalEntry(data)
	if err != nil {
		return model.CacheEntry{}, false, errors.Wrapf(err, "decoding cache entry %s", key)
	}
	return entry, true, nil
}

func (d *diskTier) put(key string, entry model.CacheEntry) error {
	if err := fsutil.EnsureDir(d.root); err != nil {
		return err
	}

	fl := flock.NewFlock(d.lockPath(key))
	if err := fl.Lock(); err != nil {
		return errors.Wrapf(err, "locking cache entry %s", key)
	}
	defer fl.Unlock()

	data, err := marshalEntry(entry)
	if err != nil {
		return errors.Wrapf(err, "encoding cache entry %s", key)
	}
	return fsutil.WriteFileAtomic(d.path(key), data, 0o644)
}

func (d *diskTier) remove(key string) error {
	fl := flock.NewFlock(d.lockPath(key))
	if err := fl.Lock(); err != nil {
		return errors.Wrapf(err, "locking cache entry %s", key)
	}
	defer fl.Unlock()

	if err := os.Remove(d.path(key)); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "removing cache entry %s", key)
	}
	os.Remove(d.lockPath(key))
	return nil
}

// removeIf scans every stored entry and removes those matching pred,
// used by InvalidateByPackage and CleanupExpired which have no index
// other than the entries themselves.
func (d *diskTier) removeIf(pred func(key string, entry model.CacheEntry) bool) error {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "listing cache dir %s", d.root)
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		key := e.Name()[:len(e.Name())-len(".json")]
		entry, ok, err := d.get(key)
		if err != nil || !ok {
			continue
		}
		if pred(key, entry) {
			if err := d.remove(key); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *diskTier) clear() error {
	if err := os.RemoveAll(d.root); err != nil {
		return errors.Wrapf(err, "clearing cache dir %s", d.root)
	}
	return fsutil.EnsureDir(d.root)
}
