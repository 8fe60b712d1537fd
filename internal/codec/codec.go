// Package codec converts values to and from the supported text formats.
package codec

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format identifies a serialization format.
type Format string

const (
	TOML Format = "toml"
	JSON Format = "json"
	YAML Format = "yaml"
	XML  Format = "xml"
)

// Default is the format of the live task and config files.
const Default = TOML

var (
	// ErrEncode marks failures while serializing a value.
	ErrEncode = errors.New("serializing")
	// ErrDecode marks failures while deserializing text.
	ErrDecode = errors.New("deserializing")
	// ErrUnknownFormat is returned for format names outside toml|json|yaml|xml.
	ErrUnknownFormat = errors.New("unknown format")
)

// Error describes a failed encode or decode. It matches both its kind
// (ErrEncode or ErrDecode) and the underlying library error.
type Error struct {
	Kind   error
	Format Format
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Format, e.Err)
}

// Unwrap returns the kind and the underlying error.
func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

type codec struct {
	marshal   func(v any) ([]byte, error)
	unmarshal func(data []byte, v any) error
	// parse decodes into a generic tree. Nil for XML, which has no
	// untyped form.
	parse func(data []byte) (any, error)
}

var codecs = map[Format]codec{
	TOML: {marshal: marshalTOML, unmarshal: toml.Unmarshal, parse: parseTOML},
	JSON: {marshal: marshalJSON, unmarshal: json.Unmarshal, parse: parseJSON},
	YAML: {marshal: yaml.Marshal, unmarshal: yaml.Unmarshal, parse: parseYAML},
	XML:  {marshal: marshalXML, unmarshal: xml.Unmarshal},
}

// Formats returns the supported formats, default first.
func Formats() []Format {
	return []Format{TOML, JSON, YAML, XML}
}

// ParseFormat parses a case-insensitive format name.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := codecs[f]; !ok {
		return "", fmt.Errorf("%w %q, must be one of: toml, json, yaml, xml", ErrUnknownFormat, name)
	}
	return f, nil
}

// String returns the format name.
func (f Format) String() string {
	return string(f)
}

// validator is implemented by decoded values that check their own invariants.
type validator interface {
	Validate() error
}

// documentValidator is implemented by values that check the parsed document
// before it is decoded into them. The document is a JSON-compatible tree:
// maps, slices, strings, bools, json.Number and nil.
type documentValidator interface {
	ValidateDocument(doc any) error
}

// normalizer is implemented by values with a canonical in-memory form.
type normalizer interface {
	Normalize()
}

// Encode serializes v in format f. A value with a Normalize method is put
// in canonical form first.
func Encode(v any, f Format) ([]byte, error) {
	c, ok := codecs[f]
	if !ok {
		return nil, &Error{Kind: ErrEncode, Format: f, Err: ErrUnknownFormat}
	}
	if n, ok := v.(normalizer); ok {
		n.Normalize()
	}
	data, err := c.marshal(v)
	if err != nil {
		return nil, &Error{Kind: ErrEncode, Format: f, Err: err}
	}
	return data, nil
}

// Decode parses data in format f into a T. If *T has a ValidateDocument
// method it sees the untyped document first; a Validate method runs after
// decoding. Either failure is reported as a decode error.
func Decode[T any](data []byte, f Format) (T, error) {
	var v T
	if err := DecodeInto(data, f, &v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// DecodeInto parses data in format f into the value pointed to by v.
func DecodeInto(data []byte, f Format, v any) error {
	c, ok := codecs[f]
	if !ok {
		return &Error{Kind: ErrDecode, Format: f, Err: ErrUnknownFormat}
	}
	if dv, ok := v.(documentValidator); ok && c.parse != nil {
		doc, err := c.parse(data)
		if err != nil {
			return &Error{Kind: ErrDecode, Format: f, Err: err}
		}
		if err := dv.ValidateDocument(doc); err != nil {
			return &Error{Kind: ErrDecode, Format: f, Err: err}
		}
	}
	if err := c.unmarshal(data, v); err != nil {
		return &Error{Kind: ErrDecode, Format: f, Err: err}
	}
	if val, ok := v.(validator); ok {
		if err := val.Validate(); err != nil {
			return &Error{Kind: ErrDecode, Format: f, Err: err}
		}
	}
	if n, ok := v.(normalizer); ok {
		n.Normalize()
	}
	return nil
}

func parseTOML(data []byte) (any, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return jsonTree(doc)
}

func parseJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func parseYAML(data []byte) (any, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return jsonTree(doc)
}

// jsonTree rewrites a generic TOML or YAML tree into the shapes
// encoding/json produces, e.g. []map[string]any becomes []any.
func jsonTree(doc any) (any, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return parseJSON(data)
}

func marshalTOML(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// marshalJSON uses 2-space indentation and a trailing newline.
func marshalJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func marshalXML(v any) ([]byte, error) {
	data, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(xml.Header)+len(data)+1)
	out = append(out, xml.Header...)
	out = append(out, data...)
	return append(out, '\n'), nil
}
