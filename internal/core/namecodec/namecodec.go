// Package namecodec decodes the obfuscated upstream name field into a
// display string
//
// The encoded form is a JSON wrapper {"value":"<hex>"} whose hex payload is a
// protobuf message with a single string field. Decoding never fails: a typed
// message parse is attempted first, then a raw UTF-8 cleanup of the payload,
// and finally the Unknown sentinel. Aggregators rely on this never raising on
// malformed upstream encodings
package namecodec

import (
	"encoding/hex"
	"encoding/json"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"google.golang.org/protobuf/encoding/protowire"
)

// Unknown is the sentinel returned for anything that cannot be decoded
const Unknown = "Unknown"

// stripUnprintable removes control and format runes left by partial decodes
var stripUnprintable = runes.Remove(runes.In(unicode.C))

type wrapper struct {
	Value string `json:"value"`
}

// Encode renders a display string in the upstream encoded form
// The inverse of Decode for well formed names, used to build fixtures
func Encode(name string) string {
	payload := protowire.AppendTag(nil, 1, protowire.BytesType)
	payload = protowire.AppendString(payload, name)
	b, _ := json.Marshal(wrapper{Value: hex.EncodeToString(payload)})
	return string(b)
}

// Decode turns a raw encoded name into a display string
// Returns Unknown when any stage of the pipeline fails
func Decode(raw string) string {
	var w wrapper
	if err := json.Unmarshal([]byte(raw), &w); err != nil || w.Value == "" {
		return Unknown
	}
	payload, err := hex.DecodeString(w.Value)
	if err != nil {
		return Unknown
	}
	if s := decodeMessage(payload); s != "" {
		return s
	}
	if s := cleanUTF8(payload); s != "" {
		return s
	}
	return Unknown
}

// decodeMessage parses payload as a protobuf message and returns the first
// length-delimited field, trimmed. Empty string means no usable field
func decodeMessage(payload []byte) string {
	rest := payload
	for len(rest) > 0 {
		num, typ, n := protowire.ConsumeTag(rest)
		if n < 0 {
			return ""
		}
		rest = rest[n:]
		if typ == protowire.BytesType {
			b, n := protowire.ConsumeBytes(rest)
			if n < 0 {
				return ""
			}
			if s := strings.TrimSpace(string(b)); s != "" {
				return s
			}
			rest = rest[n:]
			continue
		}
		n = protowire.ConsumeFieldValue(num, typ, rest)
		if n < 0 {
			return ""
		}
		rest = rest[n:]
	}
	return ""
}

// cleanUTF8 decodes payload as UTF-8 dropping invalid sequences and
// unprintable runes
func cleanUTF8(payload []byte) string {
	s := strings.ToValidUTF8(string(payload), "")
	cleaned, _, err := transform.String(stripUnprintable, s)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(cleaned)
}
