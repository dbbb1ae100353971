package vault

import (
	"strconv"

	"github.com/go-faster/jx"
	"github.com/iov-one/vault/errors"
)

// Event is a structured record of something a call did. Fields are ordered,
// each event has a positional and a named representation of every field.
type Event interface {
	EventName() string
	EventFields() []EventField
}

// EventField is a single named event value, already rendered as text.
type EventField struct {
	Name  string
	Value string
}

// EventEmitter receives committed events, in the order they were raised.
// Events of a call that failed are never emitted.
type EventEmitter interface {
	Emit(Event)
}

// EmitterFunc adapts a function to the EventEmitter interface.
type EmitterFunc func(Event)

// Emit calls f(e).
func (f EmitterFunc) Emit(e Event) {
	f(e)
}

// NopEmitter drops every event.
type NopEmitter struct{}

// Emit does nothing.
func (NopEmitter) Emit(Event) {}

// EventRecord is the dual encoding of an event: every field is available
// under its position and under its name.
type EventRecord struct {
	Name   string
	Fields []EventField
}

// NewEventRecord captures the current values of given event.
func NewEventRecord(e Event) EventRecord {
	return EventRecord{Name: e.EventName(), Fields: e.EventFields()}
}

// Get returns the value stored under a position ("0", "1", ...) or a
// field name.
func (r EventRecord) Get(key string) (string, bool) {
	if i, err := strconv.Atoi(key); err == nil {
		if i < 0 || i >= len(r.Fields) {
			return "", false
		}
		return r.Fields[i].Value, true
	}
	for _, f := range r.Fields {
		if f.Name == key {
			return f.Value, true
		}
	}
	return "", false
}

// MarshalJSON renders the record as a single object, keeping field order:
//   {"event": "Voted", "0": "3", "accountId": "3", "1": "0", "motionId": "0", ...}
func (r EventRecord) MarshalJSON() ([]byte, error) {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("event")
	e.Str(r.Name)
	for i, f := range r.Fields {
		e.FieldStart(strconv.Itoa(i))
		e.Str(f.Value)
		e.FieldStart(f.Name)
		e.Str(f.Value)
	}
	e.ObjEnd()
	return e.Bytes(), nil
}

// UnmarshalJSON reads a record written by MarshalJSON. Positional keys
// repeat the named ones and are skipped.
func (r *EventRecord) UnmarshalJSON(raw []byte) error {
	d := jx.DecodeBytes(raw)
	if d.Next() != jx.Object {
		return errors.Wrap(errors.ErrInput, "event record must be an object")
	}
	rec := EventRecord{}
	err := d.Obj(func(d *jx.Decoder, key string) error {
		val, err := d.Str()
		if err != nil {
			return errors.Wrapf(errors.ErrInput, "field %q: %s", key, err)
		}
		if key == "event" {
			rec.Name = val
			return nil
		}
		if _, err := strconv.Atoi(key); err == nil {
			return nil
		}
		rec.Fields = append(rec.Fields, EventField{Name: key, Value: val})
		return nil
	})
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	*r = rec
	return nil
}
