package schemasynth

// Strictness configures enforcement for duplicate keys.
type Strictness struct {
	OnDuplicateKey Severity // Warn or Error (duplicate JSON keys).
}

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// ParseOpt bundles options for parsing JSON text.
type ParseOpt struct {
	Strictness Strictness
	MaxDepth   int   // 0 disables the check.
	MaxBytes   int64 // 0 disables the check.
	FailFast   bool
}

// Limits bounds recursive traversals over untrusted documents. Zero fields
// fall back to the defaults.
type Limits struct {
	MaxDepth int
	MaxNodes int
}

const (
	DefaultMaxDepth = 512
	DefaultMaxNodes = 1_000_000
)

// DefaultLimits returns the limits used when callers do not provide any.
func DefaultLimits() Limits {
	return Limits{MaxDepth: DefaultMaxDepth, MaxNodes: DefaultMaxNodes}
}

func (l Limits) withDefaults() Limits {
	if l.MaxDepth <= 0 {
		l.MaxDepth = DefaultMaxDepth
	}
	if l.MaxNodes <= 0 {
		l.MaxNodes = DefaultMaxNodes
	}
	return l
}

// Budget tracks the node count of one traversal. A Budget is not safe for
// concurrent use; each call site allocates its own.
type Budget struct {
	limits Limits
	nodes  int
}

// NewBudget returns a fresh Budget for the given limits.
func NewBudget(l Limits) *Budget { return &Budget{limits: l.withDefaults()} }

// Enter accounts for one visited node at the given depth (root = 0). It
// returns an error wrapping ErrLimitExceeded once either limit is crossed.
func (b *Budget) Enter(path string, depth int) error {
	if depth > b.limits.MaxDepth {
		return LimitError(path, "depth", b.limits.MaxDepth)
	}
	b.nodes++
	if b.nodes > b.limits.MaxNodes {
		return LimitError(path, "node", b.limits.MaxNodes)
	}
	return nil
}

// Nodes reports how many nodes were visited so far.
func (b *Budget) Nodes() int { return b.nodes }
