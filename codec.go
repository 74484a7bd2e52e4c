package activeredis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
)

// Payload tags. Every stored scalar slot carries exactly one of the two
// prefixes, so a payload alone decides its own decoding path. The literals are
// a wire format shared with previously stored data and must never change.
const (
	// structTag marks a payload holding a reference to another
	// server-resident structure, identified by key.
	structTag = "redis:struct"
	// valueTag marks a payload holding a self-contained serialized value.
	valueTag = "redis:abs"

	structPrefix = structTag + ":"
	valuePrefix  = valueTag + ":"
)

// codecJSON is the serializer for inline payloads. ConfigStd sorts map keys,
// which keeps encoding deterministic: equal values always produce equal
// payloads, a requirement for remove/count/contains comparisons on the store
// side.
var codecJSON = sonic.ConfigStd

// Codec converts between caller values and the single string payload stored
// for one scalar slot (a list element, hash field value, set member, or plain
// string key).
type Codec struct {
	client *Client
}

// Encode produces the payload for v. Structure handles become reference
// payloads carrying their key; everything else is serialized into an inline
// payload. Encode never touches the store.
func (c *Codec) Encode(v any) (string, error) {
	if h, ok := v.(Handle); ok {
		return structPrefix + h.Key(), nil
	}
	data, err := codecJSON.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode value: %w", err)
	}
	return valuePrefix + string(data), nil
}

// Decode reverses Encode. Inline payloads deserialize locally with no store
// access. Reference payloads cost exactly one round trip: the referenced key's
// reported type, which selects the handle implementation the payload decodes
// to. A payload carrying neither tag is a DecodingError.
func (c *Codec) Decode(ctx context.Context, payload string) (any, error) {
	switch {
	case strings.HasPrefix(payload, structPrefix):
		h, err := c.decodeReference(ctx, payload)
		if err != nil {
			return nil, err
		}
		return h, nil
	case strings.HasPrefix(payload, valuePrefix):
		return c.decodeValue(payload)
	default:
		return nil, &DecodingError{Payload: payload, Err: errors.New("unknown payload tag")}
	}
}

func (c *Codec) decodeReference(ctx context.Context, payload string) (Handle, error) {
	key := payload[len(structPrefix):]
	kind, err := c.client.rdb.Type(ctx, key).Result()
	if err != nil {
		return nil, &DecodingError{Payload: payload, Err: err}
	}
	if kind == "none" {
		return nil, &DecodingError{Payload: payload, Err: fmt.Errorf("referenced key %q does not exist", key)}
	}
	build, err := handlerFor(Kind(kind))
	if err != nil {
		return nil, &DecodingError{Payload: payload, Err: err}
	}
	return build(c.client, key), nil
}

func (c *Codec) decodeValue(payload string) (any, error) {
	raw := payload[len(valuePrefix):]
	var v any
	if err := codecJSON.Unmarshal([]byte(raw), &v); err != nil {
		return nil, &DecodingError{Payload: payload, Err: err}
	}
	return v, nil
}
