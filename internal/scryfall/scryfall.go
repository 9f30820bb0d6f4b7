// Package scryfall reads Scryfall bulk-data card dumps
// (oracle-cards.json): a single JSON array of card objects. Only the fields
// the parser pipeline needs are decoded.
package scryfall

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Card is one card object from the dump. Double-faced and split cards carry
// their text on CardFaces with an empty top-level OracleText.
type Card struct {
	Name       string     `json:"name"`
	OracleText string     `json:"oracle_text"`
	TypeLine   string     `json:"type_line"`
	Layout     string     `json:"layout"`
	SetCode    string     `json:"set"`
	CardFaces  []CardFace `json:"card_faces"`
}

// CardFace is one face of a multi-faced card.
type CardFace struct {
	Name       string `json:"name"`
	OracleText string `json:"oracle_text"`
	TypeLine   string `json:"type_line"`
}

// Face pairs a face name with its oracle text for uniform iteration.
type Face struct {
	Name       string
	OracleText string
}

// Faces returns every parseable face of the card: the card itself when it
// has top-level text, otherwise each card face with text.
func (c *Card) Faces() []Face {
	if c.OracleText != "" || len(c.CardFaces) == 0 {
		return []Face{{Name: c.Name, OracleText: c.OracleText}}
	}
	faces := make([]Face, 0, len(c.CardFaces))
	for _, f := range c.CardFaces {
		faces = append(faces, Face{Name: f.Name, OracleText: f.OracleText})
	}
	return faces
}

// ReadFile loads a dump from disk.
func ReadFile(path string) ([]Card, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()
	cards, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read corpus %s: %w", path, err)
	}
	return cards, nil
}

// Read decodes a dump from a reader. The decoder streams the top-level
// array so large dumps do not need to fit in one buffer.
func Read(r io.Reader) ([]Card, error) {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, fmt.Errorf("expected JSON array, got %v", tok)
	}

	var cards []Card
	for dec.More() {
		var card Card
		if err := dec.Decode(&card); err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return cards, nil
}
