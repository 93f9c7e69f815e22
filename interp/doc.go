// Package interp executes parsed jdl programs.
//
// An [Interpreter] runs commands in order against an in-memory collection of
// records. Records are printed as JSONL to standard output; warnings and
// confirmations go to a separate console writer so the record stream stays
// machine-readable.
package interp
