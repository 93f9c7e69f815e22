package profile

// Profiler is a running profile session.
// Stop flushes profile data and is always safe to call.
type Profiler interface{ Stop() }

// Option configures a profile session.
type Option func(*settings)

type settings struct {
	mode  string
	dir   string
	quiet bool
}

// WithMode selects the profiling mode. An empty or unknown mode disables
// profiling.
func WithMode(mode string) Option { return func(s *settings) { s.mode = mode } }

// WithDir sets the directory profile data is written to.
func WithDir(dir string) Option { return func(s *settings) { s.dir = dir } }

// WithQuiet suppresses the profiler's own log output.
func WithQuiet(quiet bool) Option { return func(s *settings) { s.quiet = quiet } }

// Start begins a profile session.
//
// If built without the pprof tag, or the configured mode is empty or
// unknown, Start returns a no-op [Profiler].
func Start(opts ...Option) Profiler {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	if s.mode == "" {
		return ignore{}
	}

	return start(s)
}

type ignore struct{}

func (ignore) Stop() {}
