package sessionstorage

import (
	"go.k6.io/k6/js/modules"

	"github.com/oshokin/xk6-session-storage/sessionstorage"
)

// init registers the sessionstorage module with the k6 runtime.
func init() {
	modules.Register("k6/x/sessionstorage", sessionstorage.New())
}
