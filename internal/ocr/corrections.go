package ocr

import "regexp"

// OCR engines routinely confuse glyphs on curved bottle labels. These
// substitutions only fire next to digits or the percent sign, so ordinary
// words ("OLD", "label") are never touched.
var corrections = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`(\d)O(%)`), `${1}0${2}`},      // 4O% -> 40%
	{regexp.MustCompile(`(\s)l(\d)`), `${1}1${2}`},     // l2 YEARS -> 12 YEARS
	{regexp.MustCompile(`(\d)l(\.)`), `${1}1${2}`},     // 4l. -> 41.
	{regexp.MustCompile(`(^|\s)l(\.\d)`), `${1}1${2}`}, // l.5 -> 1.5
}

// CorrectText applies the glyph-confusion substitutions to recognized text
func CorrectText(text string) string {
	for _, c := range corrections {
		text = c.re.ReplaceAllString(text, c.repl)
	}
	return text
}
