package storage

import (
	"fmt"
	"sort"
	"strings"

	"github.com/astrolabsoftware/fink-cli/internal/config"
)

// Initializer creates the storage layout on the backend selected by FS_KIND.
type Initializer struct {
	Backends map[string]Backend
}

// NewInitializer creates an initializer over the given backends, keyed by FS_KIND value.
func NewInitializer(backends map[string]Backend) *Initializer {
	return &Initializer{Backends: backends}
}

// Init creates every directory of the layout rooted at ONLINE_DATA_PREFIX.
// The backend is validated before any directory is touched; each directory is
// attempted once and existing directories are not an error.
func (in *Initializer) Init(ctx *config.Context) (Layout, error) {
	kind := ctx.GetString(config.KeyFSKind)
	backend, ok := in.Backends[kind]
	if !ok {
		return Layout{}, &config.ConfigurationError{
			Key: config.KeyFSKind,
			Msg: fmt.Sprintf("FS_KIND %q not understood. You must choose between %s", kind, strings.Join(in.kinds(), " and ")),
		}
	}

	root, ok := ctx.Get(config.KeyStorageRoot)
	if !ok {
		return Layout{}, &config.ConfigurationError{
			Key: config.KeyStorageRoot,
			Msg: fmt.Sprintf("%s is not set; cannot initialise storage", config.KeyStorageRoot),
		}
	}

	layout := NewLayout(root)
	for _, p := range layout.Paths() {
		if err := backend.MkdirAll(p); err != nil {
			return layout, fmt.Errorf("%s storage init: %w", backend.Kind(), err)
		}
	}
	return layout, nil
}

func (in *Initializer) kinds() []string {
	kinds := make([]string, 0, len(in.Backends))
	for k := range in.Backends {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
