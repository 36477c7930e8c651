package render

import "regexp"

// Style is the presentation descriptor for a structural node. It depends on
// nesting depth only; two sections at the same depth always share a Style.
type Style struct {
	Tier      int    // 0..4; every depth >= 4 maps to tier 4
	Container string // CSS classes of the wrapping element
	Heading   string // CSS classes of the heading text
	Badge     string // CSS classes of the level label badge
	Tag       string // heading element name
}

var styles = [...]Style{
	{Tier: 0, Container: "sec sec-0", Heading: "hd hd-0", Badge: "badge badge-primary", Tag: "h2"},
	{Tier: 1, Container: "sec sec-1", Heading: "hd hd-1", Badge: "badge badge-neutral", Tag: "h3"},
	{Tier: 2, Container: "sec sec-2", Heading: "hd hd-2", Badge: "badge badge-muted", Tag: "h4"},
	{Tier: 3, Container: "sec sec-3", Heading: "hd hd-3", Badge: "badge badge-faint", Tag: "h5"},
	{Tier: 4, Container: "sec sec-4", Heading: "hd hd-4", Badge: "badge badge-faintest", Tag: "h6"},
}

// StyleFor returns the style for a section at depth. Negative depths are
// treated as 0.
func StyleFor(depth int) Style {
	if depth < 0 {
		depth = 0
	}
	if depth >= len(styles) {
		depth = len(styles) - 1
	}
	return styles[depth]
}

// LabelPattern is the lexical category of a section's level label. It is
// recorded on rendered headings but does not influence Style.
type LabelPattern string

const (
	LabelLetter LabelPattern = "letter"
	LabelRoman  LabelPattern = "roman"
	LabelDigit  LabelPattern = "digit"
	LabelOther  LabelPattern = "other"
)

var (
	letterLabel = regexp.MustCompile(`^[A-Z]\.`)
	romanLabel  = regexp.MustCompile(`^[IVXLCDM]+\.`)
	digitLabel  = regexp.MustCompile(`^[0-9]+\.`)
)

// ClassifyLabel sorts a level label into one of the label patterns. The
// single-letter test runs first, so "I." is a letter label and "II." a roman
// one.
func ClassifyLabel(level string) LabelPattern {
	switch {
	case letterLabel.MatchString(level):
		return LabelLetter
	case romanLabel.MatchString(level):
		return LabelRoman
	case digitLabel.MatchString(level):
		return LabelDigit
	default:
		return LabelOther
	}
}
