package yangresolve

// Flags is a bitset of resolution behaviors a caller opts into.
type Flags uint32

const (
	// KeepEmptyContainers disables the automatic pruning of non-presence
	// containers that end up with no config-true descendants once
	// when/if-feature evaluation has removed everything underneath.
	KeepEmptyContainers Flags = 1 << iota

	// RPCInput restricts data resolution to an rpc's input subtree only.
	RPCInput

	// RPCOutput restricts data resolution to an rpc's output subtree only.
	RPCOutput

	// NoAutoDelete disables the auto-delete of a false-when subtree during
	// data resolution, leaving WhenFalse nodes in the tree with WhenState
	// recorded instead of Deleted set.
	NoAutoDelete
)

// Has reports whether every bit in want is set in f.
func (f Flags) Has(want Flags) bool {
	return f&want == want
}

// ResolveOption configures a ResolveSchema call.
type ResolveOption interface{ apply(*resolveOptions) }

// DataOption configures a ResolveData call.
type DataOption interface{ apply(*dataOptions) }

type resolveOptions struct {
	flags  Flags
	lookup ModuleLookup
	dict   StringDict
	sched  XPathScheduler
}

type dataOptions struct {
	flags Flags
}

type resolveOptionFunc func(*resolveOptions)

func (f resolveOptionFunc) apply(cfg *resolveOptions) {
	if cfg == nil {
		return
	}
	f(cfg)
}

type dataOptionFunc func(*dataOptions)

func (f dataOptionFunc) apply(cfg *dataOptions) {
	if cfg == nil {
		return
	}
	f(cfg)
}

// WithFlags sets the resolution flags for a ResolveSchema call.
func WithFlags(flags Flags) ResolveOption {
	return resolveOptionFunc(func(cfg *resolveOptions) {
		cfg.flags = flags
	})
}

// WithModuleLookup supplies the collaborator ResolveSchema consults for
// modules not present among the parsed inputs (already-compiled library
// modules a host application holds elsewhere).
func WithModuleLookup(lookup ModuleLookup) ResolveOption {
	return resolveOptionFunc(func(cfg *resolveOptions) {
		cfg.lookup = lookup
	})
}

// WithStringDict supplies the string-interning collaborator; nil is a
// legal no-op collaborator for a caller that does not need interning.
func WithStringDict(dict StringDict) ResolveOption {
	return resolveOptionFunc(func(cfg *resolveOptions) {
		cfg.dict = dict
	})
}

// WithXPathScheduler supplies the collaborator notified once per when/must
// expression discovered on a schema node.
func WithXPathScheduler(sched XPathScheduler) ResolveOption {
	return resolveOptionFunc(func(cfg *resolveOptions) {
		cfg.sched = sched
	})
}

// WithDataFlags sets the resolution flags for a ResolveData call.
func WithDataFlags(flags Flags) DataOption {
	return dataOptionFunc(func(cfg *dataOptions) {
		cfg.flags = flags
	})
}

func applyResolveOptions(opts []ResolveOption) resolveOptions {
	var cfg resolveOptions
	for _, opt := range opts {
		if opt != nil {
			opt.apply(&cfg)
		}
	}
	return cfg
}

func applyDataOptions(opts []DataOption) dataOptions {
	var cfg dataOptions
	for _, opt := range opts {
		if opt != nil {
			opt.apply(&cfg)
		}
	}
	return cfg
}
