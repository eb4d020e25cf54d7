package app

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// Run is one decoded fragment of styled card text. Concatenating the
// Text of all runs reconstructs the plain text; the flags are auxiliary.
type Run struct {
	Text   string
	Symbol bool // inside a <sym> span: Text is an MSE symbol sequence
	Italic bool // inside an <i>/<i-flavor> span (reminder or flavor styling)
	Break  bool // an explicit line break (Text is "\n")
}

// Tags that carry only visual or editor metadata. They are stripped
// without affecting decode state.
var ignoredMarkupTags = map[string]bool{
	"atom-cardname":         true,
	"atom-legname":          true,
	"atom-reminder-action":  true,
	"atom-reminder-core":    true,
	"atom-reminder-custom":  true,
	"atom-reminder-expert":  true,
	"b":                     true,
	"error-spelling":        true,
	"kw-0":                  true,
	"kw-1":                  true,
	"kw-a":                  true,
	"nospellcheck":          true,
	"nosym":                 true,
	"soft":                  true,
	"word-list-artifact":    true,
	"word-list-enchantment": true,
	"word-list-class":       true,
	"word-list-land":        true,
	"word-list-planeswalker": true,
	"word-list-race":        true,
	"word-list-spell":       true,
	"word-list-type":        true,
}

var ignoredMarkupTagPrefixes = []string{
	"error-spelling:",
	"param-",
}

// DecodeMarkup decodes run-encoded card text. Soft line breaks (newlines
// inside a <soft-line> span) become spaces; hard newlines become Break
// runs. An open tag left unterminated at the end of the value is closed
// implicitly, and unknown tags are stripped. The escape markers are '<'
// (tags) and the literal newline (line break); a value containing
// neither decodes to a single untagged run.
func DecodeMarkup(raw string) []Run {
	return decodeRuns(raw, true)
}

// DecodeMarkupKeepSoftLines decodes like DecodeMarkup but keeps newlines
// inside <soft-line> spans as real line breaks. Used for flavor text.
func DecodeMarkupKeepSoftLines(raw string) []Run {
	return decodeRuns(raw, false)
}

func decodeRuns(raw string, softToSpace bool) []Run {
	var runs []Run
	var buf strings.Builder
	symDepth, italicDepth, softDepth := 0, 0, 0

	flush := func() {
		if buf.Len() == 0 {
			return
		}
		runs = append(runs, Run{Text: buf.String(), Symbol: symDepth > 0, Italic: italicDepth > 0})
		buf.Reset()
	}
	adjust := func(depth *int, closing bool) {
		flush()
		if closing {
			if *depth > 0 {
				*depth--
			}
		} else {
			*depth++
		}
	}

	i := 0
	for i < len(raw) {
		c := raw[i]
		if c == '<' {
			end := strings.IndexByte(raw[i:], '>')
			if end < 0 {
				// Stray marker with no terminator is literal text.
				buf.WriteString(raw[i:])
				break
			}
			tag := raw[i+1 : i+end]
			i += end + 1

			closing := strings.HasPrefix(tag, "/")
			name := strings.TrimPrefix(tag, "/")
			switch {
			case name == "sym" || name == "sym-auto":
				adjust(&symDepth, closing)
			case name == "i" || name == "i-auto" || name == "i-flavor":
				adjust(&italicDepth, closing)
			case name == "soft-line":
				adjust(&softDepth, closing)
			default:
				if !closing && !markupTagIgnored(name) {
					log.Debug().Str("tag", name).Msg("stripping unknown markup tag")
				}
			}
			continue
		}
		if c == '\n' {
			if softToSpace && softDepth > 0 {
				buf.WriteByte(' ')
			} else {
				flush()
				runs = append(runs, Run{Text: "\n", Break: true})
			}
			i++
			continue
		}
		buf.WriteByte(c)
		i++
	}
	flush()
	return runs
}

func markupTagIgnored(name string) bool {
	if ignoredMarkupTags[name] {
		return true
	}
	for _, prefix := range ignoredMarkupTagPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// PlainText reconstructs the full plain text of a decoded value.
func PlainText(runs []Run) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text)
	}
	return b.String()
}
