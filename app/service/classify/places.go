package classify

import (
	"strconv"
	"strings"
)

// parsePlaceSearch extracts the announced count/category from the
// header line and one place per numbered line. Entries that yield no
// name are dropped silently: a non-zero announced count with zero
// extracted entries is a recoverable condition, the caller renders the
// header over an empty grid.
func parsePlaceSearch(raw string) Result {
	search := PlaceSearch{}

	if m := placeHeaderRe.FindStringSubmatch(raw); m != nil {
		search.Count, _ = strconv.Atoi(m[1])
		search.Category = strings.TrimSpace(m[2])
	}

	for _, line := range strings.Split(raw, "\n") {
		m := numberedRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}

		if place, ok := parsePlaceEntry(m[2]); ok {
			search.Places = append(search.Places, place)
		}
	}

	return Result{Kind: KindPlaceSearch, PlaceSearch: &search}
}

// parsePlaceEntry handles the two formats the backend emits: a
// parenthesized segment after the name (the distance), or a bare name
// followed by a rating token. The two paths cover different fields and
// are deliberately kept separate.
func parsePlaceEntry(body string) (Place, bool) {
	body = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(body), pinGlyph))

	var place Place

	open := strings.Index(body, "(")
	closing := strings.Index(body, ")")

	if open >= 0 && closing > open {
		place.Name = strings.TrimSpace(body[:open])
		place.Distance = strings.TrimSpace(body[open+1 : closing])

		rest := body[closing+1:]
		place.Rating = strings.TrimSpace(ratingRe.FindString(rest))
		place.Status = parseStatus(rest)
		place.Address = parseAddress(rest)
		place.MapsURL = mapsURLRe.FindString(rest)
	} else if idx := strings.Index(body, starGlyph); idx >= 0 {
		place.Name = strings.TrimSpace(body[:idx])
		place.Rating = strings.TrimSpace(ratingRe.FindString(body))
		place.Status = parseStatus(body[idx:])
	} else {
		place.Name = stripGlyphs(body)
	}

	if place.Name == "" {
		return Place{}, false
	}

	return place, true
}

func parseStatus(s string) string {
	switch {
	case strings.Contains(s, openGlyph):
		return "Open"
	case strings.Contains(s, closedGlyph):
		return "Closed"
	default:
		return ""
	}
}

// parseAddress picks up a trailing "- <address>" segment once the
// rating and status tokens are removed.
func parseAddress(s string) string {
	s = ratingRe.ReplaceAllString(s, "")
	s = mapsURLRe.ReplaceAllString(s, "")
	s = stripGlyphs(s)

	idx := strings.LastIndex(s, "- ")
	if idx < 0 {
		return ""
	}

	return strings.TrimSpace(s[idx+2:])
}
