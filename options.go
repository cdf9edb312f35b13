package match

// engineOptions holds Engine construction parameters. Mirrors the
// teacher's functional-options pattern (OrderBookOption/WithLotSize in its
// own engine.go) rather than reading environment variables: this module
// embeds as a library, callers configure it in code.
type engineOptions struct {
	sideBookCapacity int
}

func defaultEngineOptions() engineOptions {
	return engineOptions{sideBookCapacity: DefaultSideBookCapacity}
}

// Option configures an Engine at construction time.
type Option func(*engineOptions)

// WithSideBookCapacity overrides the per-side order capacity (active +
// inactive) every SymbolBook's SideBooks are constructed with (§4.2).
func WithSideBookCapacity(capacity int) Option {
	return func(o *engineOptions) {
		o.sideBookCapacity = capacity
	}
}
