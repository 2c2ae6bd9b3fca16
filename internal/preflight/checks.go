package preflight

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"

	"reel/internal/deps"
	"reel/internal/store"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// FromDependency converts a binary lookup into a check result.
func FromDependency(status deps.Status) Result {
	r := Result{Name: status.Name, Passed: status.Available, Optional: status.Optional}
	if status.Available {
		r.Detail = status.Path
	} else {
		r.Detail = status.Detail
	}
	return r
}

// CheckStore reports the schema version and the number of stored projects.
func CheckStore(ctx context.Context, s *store.Store) Result {
	const name = "Project store"

	version, err := s.SchemaVersion(ctx)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", s.Path(), err)}
	}
	projects, err := s.List(ctx)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", s.Path(), err)}
	}
	return Result{
		Name:   name,
		Passed: true,
		Detail: fmt.Sprintf("%s (schema %s, %d projects)", s.Path(), version, len(projects)),
	}
}

// CheckOfflineMedia looks for imported files that no longer exist on disk in
// the latest revision of every project.
func CheckOfflineMedia(ctx context.Context, s *store.Store) Result {
	const name = "Media files"

	projects, err := s.List(ctx)
	if err != nil {
		return Result{Name: name, Optional: true, Detail: fmt.Sprintf("error: %v", err)}
	}

	var offline []string
	total := 0
	for _, rec := range projects {
		p, _, err := s.Load(ctx, rec.ID)
		if err != nil {
			return Result{Name: name, Optional: true, Detail: fmt.Sprintf("load %s: %v", rec.Name, err)}
		}
		for _, item := range p.Library.Items() {
			total++
			if _, err := os.Stat(item.Path); errors.Is(err, os.ErrNotExist) {
				offline = append(offline, fmt.Sprintf("%s: %s", rec.Name, item.Path))
			}
		}
	}
	if len(offline) > 0 {
		return Result{
			Name:     name,
			Optional: true,
			Detail:   fmt.Sprintf("%d of %d offline (%s)", len(offline), total, strings.Join(offline, ", ")),
		}
	}
	return Result{Name: name, Passed: true, Optional: true, Detail: fmt.Sprintf("%d online", total)}
}
