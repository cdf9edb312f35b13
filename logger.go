package match

import (
	"log/slog"
	"os"

	"github.com/rs/xid"
)

var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger allows setting a custom logger.
func SetLogger(l *slog.Logger) {
	logger = l
}

// newCorrelationID mints a short, sortable id for a single Process call's
// log lines. It is independent of the caller-supplied OrderID, which may
// repeat across test runs or engines and is not itself sortable.
func newCorrelationID() string {
	return xid.New().String()
}
