package classify

// Kind discriminates the closed set of result shapes a raw backend
// response can be classified into. Rendering code switches on it
// exhaustively.
type Kind int

const (
	KindGeneral Kind = iota
	KindPlaceSearch
	KindDirections
	KindLocation
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindPlaceSearch:
		return "place_search"
	case KindDirections:
		return "directions"
	case KindLocation:
		return "location"
	case KindError:
		return "error"
	default:
		return "general"
	}
}

// Result is a tagged variant: exactly the field matching Kind is set.
type Result struct {
	Kind Kind

	PlaceSearch *PlaceSearch
	Directions  *Directions
	Location    *Location
	General     *General
	Error       *Error
}

type PlaceSearch struct {
	// Count is the number of places the backend announced, which may
	// exceed the number of entries actually extracted.
	Count    int
	Category string
	Places   []Place
}

type Place struct {
	Name     string
	Distance string
	Rating   string
	// Status is "Open", "Closed" or empty when the response carried no
	// status glyph.
	Status  string
	Address string
	MapsURL string
}

type Directions struct {
	Destination string
	Distance    string
	Duration    string
	MapsURL     string
	Steps       []Step
}

type Step struct {
	Index       int
	Instruction string
}

type Location struct {
	Text string
}

// General carries the response verbatim. When the text embeds a maps
// link, Before/URL/After hold the split so the link can be rendered as
// an anchor.
type General struct {
	Text   string
	Before string
	URL    string
	After  string
}

// Error keeps the original text for diagnostics alongside a short
// human-readable message.
type Error struct {
	Message string
	Raw     string
}
