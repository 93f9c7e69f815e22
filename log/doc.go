// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// The package offers configurable time formatting, caller information,
// and output formats that are applied at logger creation time using
// functional options.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("script loaded", slog.String("path", "clean.jdl"))
//
// # Configuration
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("Kitchen"),
//		log.WithCaller(true))
//
// The package-level functions ([Debug], [Info], [Warn], [Error] and their
// Context variants) write through a default logger on stderr, which the
// command line reconfigures with [Config]. Standard output is left alone
// because it carries JSONL records.
//
// # Output Formats
//
// Two output formats are supported: [FormatText] (default) and [FormatJSON].
// Text output is colorized unless pretty printing is disabled with
// [WithPretty].
package log
