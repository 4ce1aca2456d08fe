package speech

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const shortSentenceLimit = 50

var (
	placeHeaderRe = regexp.MustCompile(`Found (\d+) ([^(]+?)(?:\s*\(|near you)`)
	numberedRe    = regexp.MustCompile(`^(\d+)\.\s*(.*)$`)
	weatherRe     = regexp.MustCompile(`(-?\d+(?:\.\d+)?°[CF])\s*,?\s*([^\n(]+)`)
	tempSetRe     = regexp.MustCompile(`Temperature set to (-?\d+(?:\.\d+)?\s*°[CF])`)
)

// Canned confirmations for vehicle toggles, triggered by keyword
// presence. Deliberately coarse: playback wants a short fixed phrase,
// not the backend's full wording.
var cannedReplies = []struct {
	keywords []string
	reply    string
}{
	{[]string{"air conditioning", "turned on"}, "Air conditioning turned on."},
	{[]string{"air conditioning", "turned off"}, "Air conditioning turned off."},
	{[]string{"AC turned on"}, "Air conditioning turned on."},
	{[]string{"AC turned off"}, "Air conditioning turned off."},
	{[]string{"doors", "unlocked"}, "Doors unlocked."},
	{[]string{"doors", "locked"}, "Doors locked."},
	{[]string{"lights", "turned on"}, "Lights turned on."},
	{[]string{"lights", "turned off"}, "Lights turned off."},
	{[]string{"music", "paused"}, "Music paused."},
	{[]string{"playing", "music"}, "Playing music."},
	{[]string{"Now playing"}, "Playing music."},
}

// Summarize reduces a raw backend response to a single short utterance
// for text-to-speech. An empty result means "do not speak". The rule
// ladder is independent of response classification and deliberately
// simpler: it optimizes for brevity, not fidelity.
func Summarize(raw string) string {
	if summary, ok := summarizeLocation(raw); ok {
		return summary
	}

	if summary, ok := summarizePlaces(raw); ok {
		return summary
	}

	if summary, ok := summarizeNavigation(raw); ok {
		return summary
	}

	// Temperature keeps its value, so it cannot live in the canned
	// table of fixed phrases.
	if m := tempSetRe.FindStringSubmatch(raw); m != nil {
		return fmt.Sprintf("Temperature set to %s.", m[1])
	}

	for _, canned := range cannedReplies {
		if containsAll(raw, canned.keywords) {
			return canned.reply
		}
	}

	if summary, ok := summarizeWeather(raw); ok {
		return summary
	}

	if containsAny(raw, []string{"sorry", "Sorry", "apolog", "Unable to", "error", "Error"}) {
		return "Sorry, I couldn't complete that request."
	}

	return fallbackSummary(raw)
}

func summarizeLocation(raw string) (string, bool) {
	if idx := strings.Index(raw, "You are in "); idx >= 0 {
		place := firstLine(raw[idx+len("You are in "):])
		return "You are in " + ensurePeriod(stripEmoji(place)), true
	}

	if idx := strings.Index(raw, "Your current location:"); idx >= 0 {
		place := firstLine(raw[idx+len("Your current location:"):])
		return "You are in " + ensurePeriod(stripEmoji(place)), true
	}

	return "", false
}

func summarizePlaces(raw string) (string, bool) {
	m := placeHeaderRe.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}

	count := m[1]
	category := strings.TrimSpace(m[2])

	var names []string
	for _, line := range strings.Split(raw, "\n") {
		entry := numberedRe.FindStringSubmatch(strings.TrimSpace(line))
		if entry == nil {
			continue
		}

		if name := entryName(entry[2]); name != "" {
			names = append(names, name)
		}
	}

	summary := fmt.Sprintf("I found %s %s near you.", count, category)
	if len(names) == 0 {
		return summary, true
	}

	including := names
	if len(including) > 3 {
		including = including[:3]
	}

	switch len(including) {
	case 1:
		summary += fmt.Sprintf(" Including %s.", including[0])
	case 2:
		summary += fmt.Sprintf(" Including %s and %s.", including[0], including[1])
	default:
		summary += fmt.Sprintf(" Including %s, %s, and %s", including[0], including[1], including[2])
		// The remainder counts against the announced total, not the
		// entries that happened to parse.
		total, err := strconv.Atoi(count)
		if err != nil {
			total = len(names)
		}
		if remaining := total - 3; remaining > 0 {
			summary += fmt.Sprintf(", plus %d more options", remaining)
		}
		summary += "."
	}

	return summary, true
}

// entryName takes the readable name off a numbered place line: text up
// to the first delimiter, glyphs removed.
func entryName(body string) string {
	for _, delim := range []string{"(", "⭐", " - "} {
		if idx := strings.Index(body, delim); idx >= 0 {
			body = body[:idx]
		}
	}

	return strings.TrimSpace(stripEmoji(body))
}

// Navigation is only spoken when the response carries both a distance
// and a duration; a bare route header reads better unspoken.
func summarizeNavigation(raw string) (string, bool) {
	if !strings.Contains(raw, "Distance:") || !strings.Contains(raw, "Duration:") {
		return "", false
	}

	destination := labelValue(raw, "Destination:")
	if destination == "" {
		destination = labelValue(raw, "Navigation to")
	}
	if destination == "" {
		return "", false
	}

	distance := labelValue(raw, "Distance:")
	duration := labelValue(raw, "Duration:")

	return fmt.Sprintf("Navigation to %s. %s. %s.",
		stripEmoji(destination), stripEmoji(distance), stripEmoji(duration)), true
}

func summarizeWeather(raw string) (string, bool) {
	if !strings.Contains(raw, "Weather") {
		return "", false
	}

	m := weatherRe.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}

	condition := strings.TrimSpace(stripEmoji(firstLine(m[2])))

	return fmt.Sprintf("%s with %s.", m[1], strings.TrimSuffix(condition, ".")), true
}

// fallbackSummary speaks the first sentence, plus the second when the
// first is short enough to sound clipped on its own.
func fallbackSummary(raw string) string {
	sentences := splitSentences(stripEmoji(raw))
	if len(sentences) == 0 {
		return "Task completed."
	}

	summary := sentences[0] + "."
	if len(sentences[0]) < shortSentenceLimit && len(sentences) > 1 {
		summary += " " + sentences[1] + "."
	}

	return summary
}

func splitSentences(s string) []string {
	var result []string

	for _, part := range strings.FieldsFunc(s, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	}) {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}

	return result
}

func labelValue(raw, label string) string {
	idx := strings.Index(raw, label)
	if idx < 0 {
		return ""
	}

	return strings.TrimSpace(firstLine(raw[idx+len(label):]))
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}

	return strings.TrimSpace(s)
}

func ensurePeriod(s string) string {
	if strings.HasSuffix(s, ".") {
		return s
	}

	return s + "."
}

func stripEmoji(s string) string {
	var builder strings.Builder
	builder.Grow(len(s))

	for _, r := range s {
		if isEmoji(r) {
			continue
		}
		builder.WriteRune(r)
	}

	return strings.TrimSpace(builder.String())
}

func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F000 && r <= 0x1FAFF:
		return true
	case r >= 0x2600 && r <= 0x27BF:
		return true
	case r >= 0x2B00 && r <= 0x2BFF:
		return true
	case r == 0xFE0F || r == 0x200D:
		return true
	case r >= 0x2190 && r <= 0x21FF:
		return true
	case r == 0x23F1 || r == 0x23F2:
		return true
	default:
		return false
	}
}

func containsAll(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if !strings.Contains(strings.ToLower(s), strings.ToLower(keyword)) {
			return false
		}
	}

	return true
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}

	return false
}
