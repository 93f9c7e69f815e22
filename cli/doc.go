// Package cli contains the command line interface for jdl.
//
// # Usage
//
// Run a script (the default command):
//
//	jdl script.jdl
//	jdl run --watch script.jdl
//
// Inspect a script without running it:
//
//	jdl tokens script.jdl
//	jdl ast --format yaml script.jdl
//
// Write the current flag values to the configuration file:
//
//	jdl init --force
//
// # Configuration
//
// Flag values are read from config.json and config.yaml in the user
// configuration directory (for example ~/.config/jdl). The YAML file is a
// flat mapping of flag names to values. Command-line flags take precedence.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (rfc3339, kitchen, none, ...)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o jdl .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: ~/.cache/jdl/pprof)
package cli
