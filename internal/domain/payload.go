package domain

import "encoding/json"

// PlacePayload is the upstream places-provider document as handed to the
// ingestion pipeline. Only the identity fields are typed strictly; the
// rest is projected into PlaceCache on a best-effort basis and the raw
// document is retained verbatim.
type PlacePayload struct {
	PlaceID          string          `json:"place_id"`
	Name             string          `json:"name"`
	Geometry         *Geometry       `json:"geometry"`
	FormattedAddress *string         `json:"formatted_address,omitempty"`
	Vicinity         *string         `json:"vicinity,omitempty"`
	Types            []string        `json:"types,omitempty"`
	PlusCode         *PlusCode       `json:"plus_code,omitempty"`
	Raw              json.RawMessage `json:"-"`
}

// Geometry carries the coordinate pair and optional viewport of a payload.
type Geometry struct {
	Location *Point    `json:"location"`
	Viewport *Viewport `json:"viewport,omitempty"`
}

// HasGeometry reports whether the payload carries a usable coordinate pair.
func (p *PlacePayload) HasGeometry() bool {
	return p.Geometry != nil && p.Geometry.Location != nil
}

// Address returns the best displayable address the payload offers.
func (p *PlacePayload) Address() *string {
	if p.FormattedAddress != nil && *p.FormattedAddress != "" {
		return p.FormattedAddress
	}
	return p.Vicinity
}
