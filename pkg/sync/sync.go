// Package sync reconciles the permission catalog in storage with the
// permissions derivable from the route registration table. It runs once
// per process at startup, before the server begins accepting requests.
package sync

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/permauth/permauth-in-go/pkg/routemeta"
	"github.com/permauth/permauth-in-go/pkg/server/store"
)

// Syncer inserts catalog records for registered routes that storage does
// not know about yet. It never updates or deletes existing records.
type Syncer struct {
	registry    *routemeta.Registry
	permissions store.PermissionsStore
}

func NewSyncer(registry *routemeta.Registry, permissions store.PermissionsStore) *Syncer {
	return &Syncer{registry: registry, permissions: permissions}
}

// Discover derives the desired catalog from the registration table, in
// registration order. Only non-actionable routes and groups whose
// module name collapses to nothing are excluded. Skip and anonymous
// flags and explicit required-permission overrides change what the gate
// enforces, never what the catalog records, so the convention name is
// derived for those routes all the same. The first route to produce a
// given name wins; later duplicates are dropped.
func (s *Syncer) Discover() []store.Permission {
	seen := make(map[string]struct{})
	var desired []store.Permission
	for _, meta := range s.registry.Entries() {
		if meta == nil || meta.NonActionable {
			continue
		}
		name := routemeta.Name(meta)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		module, action := splitName(name)
		desired = append(desired, store.Permission{
			Name:        name,
			Module:      module,
			Action:      action,
			Description: fmt.Sprintf("Allows %s on %s", action, module),
		})
	}
	return desired
}

// Sync diffs the desired catalog against the stored one and batch
// inserts the missing records. A unique-name collision means another
// instance synchronized concurrently and is logged, not returned; any
// other storage error is returned and should abort startup.
func (s *Syncer) Sync() error {
	desired := s.Discover()

	existing, err := s.permissions.ListPermissionNames()
	if err != nil {
		return fmt.Errorf("failed to list stored permissions: %w", err)
	}
	known := make(map[string]struct{}, len(existing))
	for _, name := range existing {
		known[name] = struct{}{}
	}

	var missing []store.Permission
	for _, perm := range desired {
		if _, ok := known[perm.Name]; !ok {
			missing = append(missing, perm)
		}
	}
	if len(missing) == 0 {
		log.Printf("sync: permission catalog up to date (%d permissions)", len(desired))
		return nil
	}

	err = s.permissions.CreatePermissions(missing)
	if errors.Is(err, store.ErrDuplicateName) {
		log.Printf("sync: catalog records already inserted by a concurrent instance")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to insert %d catalog records: %w", len(missing), err)
	}

	log.Printf("sync: inserted %d new permissions", len(missing))
	return nil
}

// splitName breaks "<Module>.<Action>" apart. A name without a dot
// keeps its whole text as the module.
func splitName(name string) (module, action string) {
	idx := strings.Index(name, ".")
	if idx < 0 {
		return name, ""
	}
	return name[:idx], name[idx+1:]
}
