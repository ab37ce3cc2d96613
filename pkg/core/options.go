package core

import (
	"bytes"
	"encoding/json"
)

// Option is a single captured option: key and raw value.
type Option struct {
	Key   string
	Value string
}

// Options is an ordered option mapping. Keys keep first-seen order; setting
// an existing key replaces its value in place.
type Options []Option

// Get returns the value stored for key.
func (o Options) Get(key string) (string, bool) {
	for _, opt := range o {
		if opt.Key == key {
			return opt.Value, true
		}
	}
	return "", false
}

// Set stores value under key.
func (o *Options) Set(key, value string) {
	for i := range *o {
		if (*o)[i].Key == key {
			(*o)[i].Value = value
			return
		}
	}
	*o = append(*o, Option{Key: key, Value: value})
}

// Keys returns the option keys in order.
func (o Options) Keys() []string {
	keys := make([]string, len(o))
	for i, opt := range o {
		keys[i] = opt.Key
	}
	return keys
}

// MarshalJSON encodes the options as a JSON object in insertion order.
func (o Options) MarshalJSON() ([]byte, error) {
	var w objectWriter
	for _, opt := range o {
		if err := w.field(opt.Key, opt.Value); err != nil {
			return nil, err
		}
	}
	return w.bytes(), nil
}

// objectWriter builds a JSON object with a fixed field order.
type objectWriter struct {
	buf bytes.Buffer
	n   int
}

func (w *objectWriter) field(key string, value any) error {
	if w.n == 0 {
		w.buf.WriteByte('{')
	} else {
		w.buf.WriteByte(',')
	}
	w.n++
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	w.buf.Write(k)
	w.buf.WriteByte(':')
	v, err := json.Marshal(value)
	if err != nil {
		return err
	}
	w.buf.Write(v)
	return nil
}

func (w *objectWriter) bytes() []byte {
	if w.n == 0 {
		return []byte("{}")
	}
	w.buf.WriteByte('}')
	return w.buf.Bytes()
}
