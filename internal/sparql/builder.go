package sparql

import "strings"

// Request-supplied values are never spliced into pattern text directly.
// They pass through Literal or IRI, which emit fully delimited, escaped
// terms so input is always treated as data rather than query syntax.

var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// Literal renders v as a quoted SPARQL string literal.
func Literal(v string) string {
	return `"` + literalEscaper.Replace(v) + `"`
}

// IRI renders v as a delimited IRI reference. Characters that would
// terminate or alter the reference are percent-encoded.
func IRI(v string) string {
	var b strings.Builder
	b.WriteByte('<')
	for _, r := range v {
		switch {
		case r <= 0x20, r == '<', r == '>', r == '"', r == '{', r == '}',
			r == '|', r == '^', r == '`', r == '\\':
			for _, c := range []byte(string(r)) {
				b.WriteByte('%')
				b.WriteByte(hexDigits[c>>4])
				b.WriteByte(hexDigits[c&0xf])
			}
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('>')
	return b.String()
}

const hexDigits = "0123456789ABCDEF"
