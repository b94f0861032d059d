package sessionstorage

import (
	"fmt"

	"github.com/grafana/sobek"
	"go.k6.io/k6/js/common"
	"go.k6.io/k6/js/modules"
)

// Options controls what openStorage() returns.
type Options struct {
	// Name selects a storage shared by every VU in the test process.
	// When empty, openStorage() creates a new storage visible only to the
	// object it returns.
	Name string `js:"name"`
}

// NewOptionsFrom converts a Sobek (JS) value into an Options instance, applying
// defaults and validating user input. null and undefined select the defaults.
func NewOptionsFrom(vu modules.VU, options sobek.Value) (Options, error) {
	var opts Options

	if common.IsNullish(options) {
		return opts, nil
	}

	if _, ok := options.(*sobek.Object); !ok {
		return opts, fmt.Errorf("%w: options must be an object, got %s", ErrStorageOptionsInvalid, typeOf(options))
	}

	if err := vu.Runtime().ExportTo(options, &opts); err != nil {
		return opts, fmt.Errorf("%w: %w", ErrStorageOptionsInvalid, err)
	}

	return opts, nil
}

// Shared reports whether the options select a named, process-wide storage.
func (o Options) Shared() bool {
	return o.Name != ""
}
