package filter

import "github.com/google/uuid"

type keyKind uint8

const (
	kindUnspecified keyKind = iota
	kindBuiltin
	kindNamed
	kindInternal
)

// Key identifies a channel. Keys compare with ==.
// The zero Key means "unspecified": as an input it reads LastResult, as a
// result it writes only LastResult.
type Key struct {
	kind keyKind
	name string
}

// Built-in channels.
var (
	SourceGraphic = Key{kind: kindBuiltin, name: "SourceGraphic"}
	SourceAlpha   = Key{kind: kindBuiltin, name: "SourceAlpha"}
	LastResult    = Key{kind: kindBuiltin, name: "LastResult"}

	// The following are recognized but never published, so reading them
	// yields ErrChannelNotFound.
	BackgroundImage = Key{kind: kindBuiltin, name: "BackgroundImage"}
	BackgroundAlpha = Key{kind: kindBuiltin, name: "BackgroundAlpha"}
	FillPaint       = Key{kind: kindBuiltin, name: "FillPaint"}
	StrokePaint     = Key{kind: kindBuiltin, name: "StrokePaint"}
)

var builtinKeys = map[string]Key{
	SourceGraphic.name:   SourceGraphic,
	SourceAlpha.name:     SourceAlpha,
	BackgroundImage.name: BackgroundImage,
	BackgroundAlpha.name: BackgroundAlpha,
	FillPaint.name:       FillPaint,
	StrokePaint.name:     StrokePaint,
}

// NamedKey returns the key for a user result name.
func NamedKey(name string) Key {
	if name == "" {
		return Key{}
	}
	return Key{kind: kindNamed, name: name}
}

// ParseKey maps an in/in2/result attribute value to a key.
func ParseKey(s string) Key {
	if k, ok := builtinKeys[s]; ok {
		return k
	}
	return NamedKey(s)
}

// internalKey returns a fresh key that cannot collide with any user name.
func internalKey(label string) Key {
	return Key{kind: kindInternal, name: label + "-" + uuid.NewString()}
}

// IsZero reports whether k is unspecified.
func (k Key) IsZero() bool {
	return k.kind == kindUnspecified
}

// String returns the attribute spelling of the key.
func (k Key) String() string {
	switch k.kind {
	case kindUnspecified:
		return "<unspecified>"
	case kindInternal:
		return "<" + k.name + ">"
	default:
		return k.name
	}
}

// orLastResult returns LastResult for the unspecified key.
func (k Key) orLastResult() Key {
	if k.IsZero() {
		return LastResult
	}
	return k
}
