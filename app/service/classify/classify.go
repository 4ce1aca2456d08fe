// Package classify turns raw natural-language backend responses into
// structured, renderable results. The backend emits a semi-structured
// convention (pin/compass/search glyphs, "Distance:"/"Duration:"
// labels, numbered list lines); anything that does not match the
// convention degrades to a general text result instead of failing.
package classify

import (
	"regexp"
	"strings"
)

const (
	pinGlyph     = "📍"
	compassGlyph = "🧭"
	searchGlyph  = "🔍"
	openGlyph    = "🟢"
	closedGlyph  = "🔴"
	starGlyph    = "⭐"
)

var (
	placeHeaderRe = regexp.MustCompile(`Found (\d+) ([^(]+?)(?:\s*\(|near you)`)
	numberedRe    = regexp.MustCompile(`^(\d+)\.\s*(.*)$`)
	ratingRe      = regexp.MustCompile(`⭐\s*\d+(?:\.\d+)?(?:/\d+)?`)
	mapsURLRe     = regexp.MustCompile(`https://(?:www\.)?google\.com/maps\S*`)
)

// Classify inspects a raw response and selects one of the result
// shapes. It is pure and total: for any input it returns exactly one
// variant and never panics. First match wins, in this order:
// directions, location, place search, general.
func Classify(raw string) Result {
	switch {
	case strings.Contains(raw, "Turn-by-Turn") || strings.Contains(raw, compassGlyph):
		return parseDirections(raw)

	case looksLikeLocation(raw):
		return Result{Kind: KindLocation, Location: &Location{Text: strings.TrimSpace(raw)}}

	case placeHeaderRe.MatchString(raw) || strings.Contains(raw, searchGlyph):
		return parsePlaceSearch(raw)

	default:
		return parseGeneral(raw)
	}
}

// A location response is a short message with a single pin: at most
// three lines and no place-search header (a one-entry search result
// can also be short and single-pinned).
func looksLikeLocation(raw string) bool {
	if strings.Count(raw, pinGlyph) != 1 {
		return false
	}
	if placeHeaderRe.MatchString(raw) {
		return false
	}

	return len(strings.Split(strings.TrimSpace(raw), "\n")) <= 3
}

func parseGeneral(raw string) Result {
	general := General{Text: raw}

	if loc := mapsURLRe.FindStringIndex(raw); loc != nil {
		general.Before = raw[:loc[0]]
		general.URL = raw[loc[0]:loc[1]]
		general.After = raw[loc[1]:]
	}

	return Result{Kind: KindGeneral, General: &general}
}

func findMapsURL(line string) string {
	if idx := strings.Index(line, "Open in Google Maps:"); idx >= 0 {
		return strings.TrimSpace(line[idx+len("Open in Google Maps:"):])
	}

	return mapsURLRe.FindString(line)
}

func stripGlyphs(s string) string {
	for _, glyph := range []string{pinGlyph, compassGlyph, searchGlyph, openGlyph, closedGlyph, starGlyph, "❌"} {
		s = strings.ReplaceAll(s, glyph, "")
	}

	return strings.TrimSpace(s)
}
