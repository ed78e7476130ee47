package user

import "encoding/json"

// Record is one user as it moves through a pipeline. Data is absent (JSON
// null) until the fetch adapter fills it in.
type Record struct {
	ID   int             `json:"id"`
	Data json.RawMessage `json:"data"`
}

// NewRecord creates a record with no data.
func NewRecord(id int) Record {
	return Record{ID: id}
}

// WithData returns a copy of r holding data.
func (r Record) WithData(data json.RawMessage) Record {
	r.Data = append(json.RawMessage(nil), data...)
	return r
}

// HasData reports whether the record holds a non-null payload.
func (r Record) HasData() bool {
	return len(r.Data) > 0 && string(r.Data) != "null"
}
