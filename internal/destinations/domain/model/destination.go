package model

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reserved field names that are owned by the server and never taken from
// client payloads.
const (
	FieldID          = "id"
	FieldMongoID     = "_id"
	FieldCity        = "city"
	FieldCoordinates = "coordinates"
	FieldCreatedAt   = "created_at"
	FieldUpdatedAt   = "updated_at"
)

// Destination is one stored travel-location entry. City and Coordinates are
// required; everything else the client sends lives in Attributes, which is
// stored inline so documents keep their original flat shape.
type Destination struct {
	ID          primitive.ObjectID     `bson:"_id,omitempty"`
	City        string                 `bson:"city"`
	Coordinates interface{}            `bson:"coordinates"`
	CreatedAt   time.Time              `bson:"created_at"`
	UpdatedAt   *time.Time             `bson:"updated_at,omitempty"`
	Attributes  map[string]interface{} `bson:",inline"`
}

// FromMap builds a Destination from a decoded JSON object. Server-owned
// fields (id, timestamps) in the input are dropped.
func FromMap(fields map[string]interface{}) *Destination {
	d := &Destination{
		Attributes: make(map[string]interface{}),
	}
	for key, value := range fields {
		switch key {
		case FieldID, FieldMongoID, FieldCreatedAt, FieldUpdatedAt:
			// server-assigned
		case FieldCity:
			if city, ok := value.(string); ok {
				d.City = city
			}
		case FieldCoordinates:
			d.Coordinates = value
		default:
			d.Attributes[key] = value
		}
	}
	return d
}

// HasRequiredFields reports whether city and coordinates are present.
func (d *Destination) HasRequiredFields() bool {
	return d.City != "" && d.Coordinates != nil
}

// MarshalJSON flattens Attributes into the top-level object so the wire shape
// matches what clients stored.
func (d *Destination) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(d.Attributes)+5)
	for key, value := range d.Attributes {
		out[key] = value
	}
	if !d.ID.IsZero() {
		out[FieldID] = d.ID.Hex()
	}
	out[FieldCity] = d.City
	out[FieldCoordinates] = d.Coordinates
	out[FieldCreatedAt] = d.CreatedAt
	if d.UpdatedAt != nil {
		out[FieldUpdatedAt] = d.UpdatedAt
	}
	return json.Marshal(out)
}

// UnmarshalJSON is the inverse of MarshalJSON: known fields are lifted into
// their typed slots, the rest land in Attributes.
func (d *Destination) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.Attributes = make(map[string]interface{})
	for key, value := range raw {
		switch key {
		case FieldID, FieldMongoID:
			if hex, ok := value.(string); ok {
				if oid, err := primitive.ObjectIDFromHex(hex); err == nil {
					d.ID = oid
				}
			}
		case FieldCity:
			if city, ok := value.(string); ok {
				d.City = city
			}
		case FieldCoordinates:
			d.Coordinates = value
		case FieldCreatedAt:
			if ts, ok := value.(string); ok {
				if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
					d.CreatedAt = t
				}
			}
		case FieldUpdatedAt:
			if ts, ok := value.(string); ok {
				if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
					d.UpdatedAt = &t
				}
			}
		default:
			d.Attributes[key] = value
		}
	}
	return nil
}
