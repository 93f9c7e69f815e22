// Package record holds the JSONL data model: an insertion-ordered JSON object
// ([Record]) and line-delimited readers and writers for collections of them.
//
// Key order is preserved everywhere. Decoding keeps the order keys appear in
// the input (including in nested objects), and encoding writes them back in
// the same order, so a record read and written without modification
// reproduces its line byte-for-byte apart from insignificant whitespace and
// escape spelling.
//
// Numbers are kept as [json.Number] so their literal text survives.
//
// Files whose names end in ".gz" or ".zst" are transparently decompressed on
// read and compressed on write.
package record
