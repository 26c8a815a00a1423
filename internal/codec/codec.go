// Package codec provides the wire encodings used for document snapshots.
//
// Two codecs are available: "json", the human-readable default, and "cbor",
// a compact binary encoding with deterministic output. Both honor the json
// struct tags of the engine's serialized types.
package codec

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"

	"github.com/fxamacker/cbor/v2"

	editerrors "github.com/dshills/mapforge/internal/errors"
)

// Codec encodes and decodes values.
type Codec interface {
	// Name returns the format name used to select the codec.
	Name() string

	// Marshal encodes v.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}

// Format names.
const (
	FormatJSON = "json"
	FormatCBOR = "cbor"
)

var (
	// JSON is the indented JSON codec.
	JSON Codec = jsonCodec{}

	// CBOR is the deterministic CBOR codec.
	CBOR Codec = newCBORCodec()
)

var codecs = map[string]Codec{
	FormatJSON: JSON,
	FormatCBOR: CBOR,
}

// ByName returns the codec registered for a format name.
func ByName(name string) (Codec, error) {
	c, ok := codecs[name]
	if !ok {
		return nil, editerrors.NewLookupError("codec", name)
	}
	return c, nil
}

// Names returns the available format names, sorted.
func Names() []string {
	names := make([]string, 0, len(codecs))
	for name := range codecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type jsonCodec struct{}

func (jsonCodec) Name() string { return FormatJSON }

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

type cborCodec struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

func newCBORCodec() cborCodec {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("codec: cbor encoder: %v", err))
	}
	dec, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("codec: cbor decoder: %v", err))
	}
	return cborCodec{enc: enc, dec: dec}
}

func (cborCodec) Name() string { return FormatCBOR }

func (c cborCodec) Marshal(v any) ([]byte, error) {
	return c.enc.Marshal(v)
}

func (c cborCodec) Unmarshal(data []byte, v any) error {
	return c.dec.Unmarshal(data, v)
}
