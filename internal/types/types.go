// README: Common scalar types shared across modules.
package types

// ID is an opaque entity identifier (pets, owners, matches, sessions).
type ID string

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64
	Lng float64
}

// Lang tags the detected language of a user utterance.
type Lang string

const (
	LangEN Lang = "en"
	LangTH Lang = "th"
)
