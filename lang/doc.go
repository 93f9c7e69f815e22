// Package lang implements the jdl script language: a lexer, a recursive
// descent parser, and an evaluator for field expressions over JSONL records.
//
// # Grammar
//
// Informal EBNF:
//
//	Program    → Command* EOF
//	Command    → 'input' STRING ';'
//	           | 'output' STRING ';'
//	           | 'print' ';'
//	           | 'print' 'line' NUMBER ';'
//	           | 'transform' '{' Assignment* '}' ';'?
//	Assignment → IDENT '=' Expr ';'
//	Expr       → Term ('+' Term)*
//	Term       → FIELD ('.' IDENT)* Modifier*
//	           | STRING
//	           | 'raw' '(' ')'
//	           | 'serial' '(' ')'
//	Modifier   → '.' ('prefix' | 'suffix' | 'default') '(' STRING ')'
//
// Comments (// to end of line, /* ... */) may appear between commands,
// assignments, and terms.
//
// A '.' after a field continues the path when the following identifier is not
// itself followed by '('. So @a.b.suffix("x") reads key b of object a and then
// appends "x".
//
// # Example
//
//	input "events.jsonl";
//	transform {
//	  id    = serial();
//	  label = @user.name.default("anonymous").prefix("user:");
//	  orig  = raw();
//	};
//	output "labeled.jsonl";
//
// # Evaluation
//
// [Evaluate] computes one expression against one record. Fields resolve to
// their string form, or to the empty string if absent. Defaults replace a
// missing or empty value; prefixes and suffixes then apply in the order they
// are written, and never to an empty value. serial() yields 1, 2, 3, ... in
// evaluation order across the whole run, tracked by a [State].
package lang
