package dto

import (
	"encoding/json"
)

// Record is a model serialized with its media slots resolved. Value is marshaled
// as-is (media columns carry json:"-") and each slot is added under its field name.
type Record struct {
	Value  interface{}
	Media  map[string]*Media
	Images []ImageResponse
}

func (r Record) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(r.Value)
	if err != nil {
		return nil, err
	}

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	for name, m := range r.Media {
		encoded, err := json.Marshal(m)
		if err != nil {
			return nil, err
		}
		fields[name] = encoded
	}
	if r.Images != nil {
		encoded, err := json.Marshal(r.Images)
		if err != nil {
			return nil, err
		}
		fields["images"] = encoded
	}
	return json.Marshal(fields)
}

// ListResponse wraps collection endpoints
type ListResponse struct {
	Items []Record `json:"items"`
	Total int      `json:"total"`
}
