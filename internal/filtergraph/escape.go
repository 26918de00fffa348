package filtergraph

import "strings"

// Filter syntax gives special meaning to backslashes, single quotes,
// colons and commas. Unescaped user text does not merely render wrong: it
// terminates the parameter early and the remainder is parsed as further
// filter parameters, breaking or subverting the whole graph.
var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`:`, `\:`,
	`,`, `\,`,
)

// EscapeText escapes user-supplied text for use inside a filter parameter
// value, e.g. drawtext's text.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

// QuoteText escapes and single-quotes user-supplied text.
func QuoteText(s string) string {
	return "'" + EscapeText(s) + "'"
}

// Filenames only need the characters that terminate a filter argument
// escaped; commas inside a quoted path are harmless.
var pathEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`:`, `\:`,
)

// QuotePath escapes and single-quotes a file path for use as a filter
// parameter, e.g. the subtitles filter's filename. A colon would otherwise
// end the argument early and swallow the rest of the path.
func QuotePath(s string) string {
	return "'" + pathEscaper.Replace(s) + "'"
}

// EscapeExpr escapes commas inside an expression used as a parameter value,
// e.g. enable=between(t,0,5), where the commas belong to the expression
// and not to the parameter list.
func EscapeExpr(s string) string {
	return strings.ReplaceAll(s, ",", `\,`)
}
