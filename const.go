package match

const (
	// EngineVersion is the current version of the matching engine.
	EngineVersion = "v1.0.0"

	// DefaultSideBookCapacity is the suggested per-side order capacity (§4.2).
	DefaultSideBookCapacity = 1 << 16

	// SnapshotDepth is the number of ranked rows a SymbolBook.Snapshot emits (§4.3).
	SnapshotDepth = 5
)
