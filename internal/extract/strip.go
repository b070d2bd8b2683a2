package extract

import (
	"regexp"
	"strings"
)

var (
	// scriptRe and styleRe drop whole script/style blocks before tag
	// stripping, so inline JS never leaks into candidate lines.
	scriptRe  = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleRe   = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	commentRe = regexp.MustCompile(`(?s)<!--.*?-->`)

	// tagRe replaces every remaining tag with a newline to preserve the
	// page's line-oriented structure.
	tagRe = regexp.MustCompile(`(?s)<[^>]*>`)

	blankRunRe = regexp.MustCompile(`\n{2,}`)
)

// entityReplacer collapses the handful of HTML entities that matter for
// line-oriented text. Anything rarer is left as-is; it only ever costs a
// keyword match, never correctness.
var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&#160;", " ",
	"&amp;", "&",
	"&#38;", "&",
	"&quot;", `"`,
	"&#39;", "'",
	"&apos;", "'",
	"&lt;", "<",
	"&gt;", ">",
	"&ndash;", "-",
	"&mdash;", "-",
)

// StripMarkup turns raw page markup into plain line-oriented text: script,
// style, and comment blocks removed, every tag replaced with a newline,
// common entities decoded, consecutive blank lines collapsed.
func StripMarkup(markup string) string {
	text := scriptRe.ReplaceAllString(markup, "\n")
	text = styleRe.ReplaceAllString(text, "\n")
	text = commentRe.ReplaceAllString(text, "\n")
	text = tagRe.ReplaceAllString(text, "\n")
	text = entityReplacer.Replace(text)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")
	text = blankRunRe.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}
