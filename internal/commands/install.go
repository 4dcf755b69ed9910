package commands

import (
	"context"
	"path/filepath"

	"github.com/saravenpi/knot/internal/lockfile"
	"github.com/saravenpi/knot/internal/model"
)

// InstallResult is the outcome of Install: the resolved set plus the
// lock file hash that now matches it on disk.
type InstallResult struct {
	Resolution model.ResolutionResult
}

// Install performs the full §4.8 install intent: resolve, write
// knot.lock, then run the link engine. Resolution and linking failures
// abort per §7's propagation policy; only a lock-file write failure
// (an IO error on an already-successful resolution) is downgraded to a
// warning, since the resolved set and the on-disk link tree are both
// already valid without it.
func (rt *Runtime) Install(ctx context.Context, appName string) (InstallResult, *model.Error) {
	result, err := rt.Resolve(ctx, appName)
	if err != nil {
		return InstallResult{}, err
	}

	lockPath := filepath.Join(rt.appDir(appName), lockfile.FileName)
	hash, lockErr := lockfile.Write(lockPath, result)
	if lockErr != nil {
		rt.Log.Warnf("failed to write %s: %v", lockfile.FileName, lockErr)
	} else {
		result.LockfileHash = hash
	}

	if err := rt.linkResolved(ctx, appName, result); err != nil {
		return InstallResult{}, err
	}

	return InstallResult{Resolution: result}, nil
}
