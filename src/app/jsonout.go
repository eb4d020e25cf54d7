package app

import (
	"encoding/json"
)

// schemaVersion is the card-data interchange schema the output conforms to.
const schemaVersion = "4.4.1"

// SetMeta is the document's meta section.
type SetMeta struct {
	Date       string `json:"date"`
	SetVersion string `json:"setVersion,omitempty"`
	Version    string `json:"version"`
}

// SetDocument is the full output document. Field order is canonical:
// encoding/json emits struct fields in declaration order, which keeps
// repeated conversions of the same archive diff-friendly.
type SetDocument struct {
	BaseSetSize  int     `json:"baseSetSize"`
	Cards        []*Card `json:"cards"`
	Code         string  `json:"code"`
	Custom       bool    `json:"custom"`
	Meta         SetMeta `json:"meta"`
	Name         string  `json:"name,omitempty"`
	ReleaseDate  string  `json:"releaseDate,omitempty"`
	TotalSetSize int     `json:"totalSetSize"`
}

// Ruling is one entry of a card's rulings list. Custom sets have no
// official rulings; the list is emitted empty.
type Ruling struct {
	Date string `json:"date"`
	Text string `json:"text"`
}

// Card is one card record. Optional fields absent from the source are
// omitted entirely rather than emitted empty, so "absent" and "empty"
// stay distinguishable downstream.
type Card struct {
	Artist            string   `json:"artist,omitempty"`
	BorderColor       string   `json:"borderColor,omitempty"`
	ColorIdentity     []string `json:"colorIdentity"`
	Colors            []string `json:"colors"`
	ConvertedManaCost float64  `json:"convertedManaCost"`
	FlavorText        string   `json:"flavorText,omitempty"`
	HasFoil           bool     `json:"hasFoil"`
	HasNonFoil        bool     `json:"hasNonFoil"`
	Loyalty           string   `json:"loyalty,omitempty"`
	ManaCost          string   `json:"manaCost,omitempty"`
	Name              string   `json:"name"`
	Number            string   `json:"number"`
	OriginalText      string   `json:"originalText,omitempty"`
	OriginalType      string   `json:"originalType,omitempty"`
	Power             string   `json:"power,omitempty"`
	Rarity            string   `json:"rarity,omitempty"`
	Rulings           []Ruling `json:"rulings"`
	Subtypes          []string `json:"subtypes"`
	Supertypes        []string `json:"supertypes"`
	Text              string   `json:"text,omitempty"`
	Toughness         string   `json:"toughness,omitempty"`
	Type              string   `json:"type"`
	Types             []string `json:"types"`
	Watermark         string   `json:"watermark,omitempty"`

	// Archive entry holding the card's art, used by the images export.
	imageEntry string
}

// ImageEntry returns the archive entry name of the card's art, or "".
func (c *Card) ImageEntry() string {
	return c.imageEntry
}

// MarshalSetJSON renders the document as indented JSON with a trailing
// newline. The mapper guarantees a resolved set code; this re-checks it
// so a serializer misuse cannot emit an unidentifiable set.
func MarshalSetJSON(doc *SetDocument) ([]byte, error) {
	if doc.Code == "" {
		return nil, &ValidationError{Field: "code", Reason: "set code unresolved"}
	}
	if doc.Cards == nil {
		doc.Cards = []*Card{}
	}
	for _, card := range doc.Cards {
		if card.ColorIdentity == nil {
			card.ColorIdentity = []string{}
		}
		if card.Colors == nil {
			card.Colors = []string{}
		}
		if card.Supertypes == nil {
			card.Supertypes = []string{}
		}
		if card.Types == nil {
			card.Types = []string{}
		}
		if card.Subtypes == nil {
			card.Subtypes = []string{}
		}
		if card.Rulings == nil {
			card.Rulings = []Ruling{}
		}
	}
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
