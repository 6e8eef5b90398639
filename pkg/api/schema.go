package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrUnknownType is returned for envelopes whose type has no schema.
var ErrUnknownType = errors.New("unknown envelope type")

const envelopeSchema = `{
  "type": "object",
  "required": ["type"],
  "properties": {
    "type": {"type": "string", "minLength": 1},
    "payload": {}
  }
}`

const coords = `"x": {"type": "integer"}, "y": {"type": "integer"}`

// inbound payload schemas keyed by envelope type
var payloadSchemas = map[string]string{
	"join": `{
  "type": "object",
  "required": ["username"],
  "properties": {"username": {"type": "string", "minLength": 1, "maxLength": 32}}
}`,
	"move-to": `{
  "type": "object",
  "required": ["x", "y"],
  "properties": {` + coords + `}
}`,
	"harvest": `{
  "type": "object",
  "required": ["x", "y", "objectId"],
  "properties": {` + coords + `, "objectId": {"type": "string", "minLength": 1}}
}`,
	"cook": `{
  "type": "object",
  "required": ["x", "y", "itemId"],
  "properties": {` + coords + `, "itemId": {"type": "string", "minLength": 1}}
}`,
	"attack": `{
  "type": "object",
  "required": ["targetId"],
  "properties": {
    "targetId": {"type": "string", "minLength": 1},
    "style": {"enum": ["accurate", "aggressive", "defensive"]}
  }
}`,
	"toggle-run": `{"type": "object"}`,
	"chat": `{
  "type": "object",
  "required": ["message"],
  "properties": {"message": {"type": "string"}}
}`,
	"admin": `{
  "type": "object",
  "required": ["command"],
  "properties": {
    "command": {"type": "string", "minLength": 1},
    "args": {"type": "array", "items": {"type": "string"}}
  }
}`,
	"equip": `{
  "type": "object",
  "required": ["itemId"],
  "properties": {"itemId": {"type": "string", "minLength": 1}}
}`,
	"unequip": `{
  "type": "object",
  "required": ["slot"],
  "properties": {"slot": {"type": "string", "minLength": 1}}
}`,
}

type schemaSet struct {
	envelope *jsonschema.Schema
	payloads map[string]*jsonschema.Schema
}

var (
	schemasOnce sync.Once
	schemas     *schemaSet
	schemasErr  error
)

func compileSchemas() (*schemaSet, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020

	add := func(name, src string) (*jsonschema.Schema, error) {
		url := "https://webscape.local/schemas/" + name + ".json"
		if err := c.AddResource(url, strings.NewReader(src)); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", name, err)
		}
		s, err := c.Compile(url)
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", name, err)
		}
		return s, nil
	}

	set := &schemaSet{payloads: make(map[string]*jsonschema.Schema, len(payloadSchemas))}
	var err error
	if set.envelope, err = add("envelope", envelopeSchema); err != nil {
		return nil, err
	}
	for name, src := range payloadSchemas {
		if set.payloads[name], err = add(name, src); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// CompileSchemas compiles every inbound schema once. Later calls return the first result.
func CompileSchemas() error {
	schemasOnce.Do(func() {
		schemas, schemasErr = compileSchemas()
	})
	return schemasErr
}

func decodeAny(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// ValidateEnvelope decodes a raw inbound frame and validates it against the
// envelope schema and the schema of its type. A missing payload is treated as {}.
func ValidateEnvelope(raw []byte) (Envelope, error) {
	if err := CompileSchemas(); err != nil {
		return Envelope{}, err
	}

	doc, err := decodeAny(raw)
	if err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	if err := schemas.envelope.Validate(doc); err != nil {
		return Envelope{}, fmt.Errorf("envelope: %w", err)
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	env.Type = strings.ToLower(strings.TrimSpace(env.Type))
	if len(env.Payload) == 0 || string(env.Payload) == "null" {
		env.Payload = json.RawMessage("{}")
	}

	schema, ok := schemas.payloads[env.Type]
	if !ok {
		return env, fmt.Errorf("%q: %w", env.Type, ErrUnknownType)
	}
	payload, err := decodeAny(env.Payload)
	if err != nil {
		return env, fmt.Errorf("decode %s payload: %w", env.Type, err)
	}
	if err := schema.Validate(payload); err != nil {
		return env, fmt.Errorf("%s payload: %w", env.Type, err)
	}
	return env, nil
}
