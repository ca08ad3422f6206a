package discover

// Default caps. Each one bounds a different stage of the pipeline and can
// be overridden per run; they are plain option fields rather than mutable
// package state.
const (
	DefaultMaxDepth   = 2
	DefaultMaxSearch  = 1000
	DefaultMaxFilter  = 100
	DefaultMaxDisplay = 10
)

// FileFilter describes the file-presence predicate applied to candidate
// repositories. MatchAll requires every pattern to match at least one
// discovered file; otherwise one matching pattern suffices.
type FileFilter struct {
	Patterns []string
	MatchAll bool
}

// Options contains the complete set of inputs to one discovery run.
type Options struct {
	Organization string // empty selects global criteria search
	Fragment     string // repository-name fragment or glob; empty matches all
	Criteria     Criteria
	Filter       *FileFilter

	MaxDepth   int // directory levels expanded during a walk
	MaxSearch  int // repositories retrieved across pages
	MaxFilter  int // repositories walked during content filtering
	MaxMatches int // matched repositories collected (0 means MaxFilter)
	MaxDisplay int // rows presented

	SavePath string // when set, results are persisted here
}

func (o *Options) applyDefaults() {
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.MaxSearch <= 0 {
		o.MaxSearch = DefaultMaxSearch
	}
	if o.MaxFilter <= 0 {
		o.MaxFilter = DefaultMaxFilter
	}
	if o.MaxDisplay <= 0 {
		o.MaxDisplay = DefaultMaxDisplay
	}
	if o.MaxMatches <= 0 {
		o.MaxMatches = o.MaxFilter
	}
}
