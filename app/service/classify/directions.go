package classify

import (
	"strconv"
	"strings"
)

// parseDirections scans the response line by line for the navigation
// markers. A response with no destination, or with an explicit error
// line, yields an error result carrying the original text verbatim so
// the caller can still display something.
func parseDirections(raw string) Result {
	directions := Directions{}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.Contains(line, "❌") || strings.HasPrefix(line, "Unable to") {
			return Result{Kind: KindError, Error: &Error{
				Message: stripGlyphs(line),
				Raw:     raw,
			}}
		}

		switch {
		case strings.Contains(line, "Destination:"):
			directions.Destination = labelValue(line, "Destination:")
		case strings.Contains(line, "Distance:"):
			directions.Distance = labelValue(line, "Distance:")
		case strings.Contains(line, "Duration:"):
			directions.Duration = labelValue(line, "Duration:")
		case findMapsURL(line) != "":
			directions.MapsURL = findMapsURL(line)
		default:
			if m := numberedRe.FindStringSubmatch(line); m != nil {
				index, err := strconv.Atoi(m[1])
				if err != nil {
					index = len(directions.Steps) + 1
				}

				directions.Steps = append(directions.Steps, Step{
					Index:       index,
					Instruction: strings.TrimSpace(m[2]),
				})
			}
		}
	}

	if directions.Destination == "" {
		return Result{Kind: KindError, Error: &Error{
			Message: "no destination found in directions response",
			Raw:     raw,
		}}
	}

	return Result{Kind: KindDirections, Directions: &directions}
}

func labelValue(line, label string) string {
	idx := strings.Index(line, label)

	return strings.TrimSpace(line[idx+len(label):])
}
