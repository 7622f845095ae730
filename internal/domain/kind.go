package domain

import "fmt"

// Kind classifies a recipe by the spirit it produces. Each kind has its own
// batch algorithm and its own rule set.
type Kind int

const (
	KindUnknown Kind = iota
	KindMoonshine
	KindRum
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindMoonshine:
		return "moonshine"
	case KindRum:
		return "rum"
	default:
		return "unknown"
	}
}

var kindNames = map[string]Kind{
	"moonshine": KindMoonshine,
	"rum":       KindRum,
}

// KindFromString converts a kind name to a Kind.
// Returns KindUnknown for unrecognized names.
func KindFromString(name string) Kind {
	if k, ok := kindNames[name]; ok {
		return k
	}
	return KindUnknown
}

// MarshalText implements encoding.TextMarshaler so kinds read naturally in
// JSON and YAML.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed := KindFromString(string(text))
	if parsed == KindUnknown {
		return fmt.Errorf("unknown spirit kind %q", string(text))
	}
	*k = parsed
	return nil
}
