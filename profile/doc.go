// Package profile provides optional runtime profiling for jdl using
// [github.com/pkg/profile].
//
// Profiling must be enabled at build time with the "pprof" build tag:
//
//	go build -tags pprof -o jdl .
//	./jdl --pprof-mode cpu --pprof-dir ./profiles script.jdl
//
// Without the tag, [Modes] is empty and [Start] always returns a no-op
// [Profiler].
//
// Supported modes with the tag are allocs, block, clock, cpu, goroutine,
// heap, mem, mutex, thread, and trace. Profiles are written to the configured
// directory with names matching the mode (cpu.pprof, mem.pprof, ...) and can
// be inspected with go tool pprof:
//
//	go tool pprof -http=: ./profiles/cpu.pprof
//
// The default directory is the pprof subdirectory of the user cache
// directory, for example $XDG_CACHE_HOME/jdl/pprof.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
