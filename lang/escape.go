package lang

import "strings"

// escapes are decoded in this order, each over the whole text. Because \\ is
// decoded first, a doubled backslash followed by n, r, t or " decodes again
// as that escape.
var escapes = [...]struct{ from, to string }{
	{`\\`, `\`},
	{`\n`, "\n"},
	{`\r`, "\r"},
	{`\t`, "\t"},
	{`\"`, `"`},
}

// Unescape decodes the escape sequences \\, \n, \r, \t and \" in s.
//
// A backslash followed by any other character, or at the end of s, is kept
// as written.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	for _, e := range escapes {
		s = strings.ReplaceAll(s, e.from, e.to)
	}

	return s
}
