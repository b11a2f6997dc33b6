package core

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const dependenciesKey = "dependencies"

//go:embed schema/package.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("package.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("package.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// PatchManifest sets dependencies[key] = value in the JSON document at path and
// rewrites it with two-space indentation. Every other key keeps its position.
func PatchManifest(path string, key string, value string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return wrapPermission(err, path)
	}

	out, err := MergeDependency(data, key, value)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return err
	}

	return writeFile(path, out)
}

// MergeDependency is PatchManifest on an in-memory document.
func MergeDependency(data []byte, key string, value string) ([]byte, error) {
	if err := validateManifest(data); err != nil {
		return nil, err
	}

	root, err := parseOrdered(data)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	if root.kind != objectNode {
		return nil, &ParseError{Err: errors.New("top-level value is not an object")}
	}

	deps := root.get(dependenciesKey)
	if deps == nil || deps.kind != objectNode {
		// absent or null
		deps = &node{kind: objectNode}
		root.set(dependenciesKey, deps)
	}
	deps.set(key, &node{kind: scalarNode, scalar: value})

	var compact bytes.Buffer
	if err := root.encode(&compact); err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("formatting manifest: %w", err)
	}
	return out.Bytes(), nil
}

// validateManifest rejects documents that are not JSON or not shaped like a
// package manifest.
func validateManifest(data []byte) error {
	schema, err := getSchema()
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return &ParseError{Err: err}
	}

	err = schema.Validate(inst)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Errorf("validating manifest: %w", err)
	}
	return &ParseError{Err: errors.New(strings.Join(collectIssues(ve), "; "))}
}

// collectIssues flattens the validation error tree into leaf messages.
func collectIssues(ve *jsonschema.ValidationError) []string {
	if len(ve.Causes) == 0 {
		msg := ve.Error()
		if ve.ErrorKind != nil {
			msg = ve.ErrorKind.LocalizedString(printer)
		}
		loc := "/" + strings.Join(ve.InstanceLocation, "/")
		return []string{loc + ": " + msg}
	}

	var issues []string
	for _, cause := range ve.Causes {
		issues = append(issues, collectIssues(cause)...)
	}
	return issues
}

type nodeKind int

const (
	scalarNode nodeKind = iota
	objectNode
	arrayNode
)

// node is a JSON value that remembers object key order.
type node struct {
	kind   nodeKind
	scalar any // string, json.Number, bool or nil
	keys   []string
	values []*node // object values by key position, or array items
}

func (n *node) get(key string) *node {
	for i, k := range n.keys {
		if k == key {
			return n.values[i]
		}
	}
	return nil
}

// set replaces the value of an existing key in place or appends a new key.
// Repeated keys therefore collapse onto their first position with the last
// value, as with JSON.parse.
func (n *node) set(key string, v *node) {
	for i, k := range n.keys {
		if k == key {
			n.values[i] = v
			return
		}
	}
	n.keys = append(n.keys, key)
	n.values = append(n.values, v)
}

func parseOrdered(data []byte) (*node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	root, err := parseValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after top-level value")
	}
	return root, nil
}

func parseValue(dec *json.Decoder) (*node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return &node{kind: scalarNode, scalar: tok}, nil
	}

	switch delim {
	case '{':
		n := &node{kind: objectNode}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("object key %v is not a string", keyTok)
			}
			v, err := parseValue(dec)
			if err != nil {
				return nil, err
			}
			n.set(key, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return n, nil
	case '[':
		n := &node{kind: arrayNode}
		for dec.More() {
			v, err := parseValue(dec)
			if err != nil {
				return nil, err
			}
			n.values = append(n.values, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return n, nil
	}
	return nil, fmt.Errorf("unexpected delimiter %v", delim)
}

func (n *node) encode(buf *bytes.Buffer) error {
	switch n.kind {
	case objectNode:
		buf.WriteByte('{')
		for i, k := range n.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeString(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := n.values[i].encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case arrayNode:
		buf.WriteByte('[')
		for i, item := range n.values {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		switch v := n.scalar.(type) {
		case string:
			return encodeString(buf, v)
		case json.Number:
			buf.WriteString(v.String())
		case bool:
			if v {
				buf.WriteString("true")
			} else {
				buf.WriteString("false")
			}
		case nil:
			buf.WriteString("null")
		default:
			return fmt.Errorf("unexpected JSON value %T", v)
		}
	}
	return nil
}

func encodeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1) // Encode appends a newline
	return nil
}
