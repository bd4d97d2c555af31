package namecodec

import (
	"encoding/hex"
	"encoding/json"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
)

// encode builds the upstream JSON+hex wrapper around a protobuf string field
func encode(t *testing.T, name string) string {
	t.Helper()
	var msg []byte
	msg = protowire.AppendTag(msg, 1, protowire.BytesType)
	msg = protowire.AppendBytes(msg, []byte(name))
	raw, err := json.Marshal(map[string]string{"value": hex.EncodeToString(msg)})
	if err != nil {
		t.Fatal(err)
	}
	return string(raw)
}

func rawHex(t *testing.T, payload []byte) string {
	t.Helper()
	raw, err := json.Marshal(map[string]string{"value": hex.EncodeToString(payload)})
	if err != nil {
		t.Fatal(err)
	}
	return string(raw)
}

func TestDecodeTypedMessage(t *testing.T) {
	if got := Decode(encode(t, "Ministry of Health")); got != "Ministry of Health" {
		t.Fatalf("Decode = %q", got)
	}
	// surrounding whitespace in the payload is trimmed
	if got := Decode(encode(t, "  Health  ")); got != "Health" {
		t.Fatalf("Decode(trim) = %q", got)
	}
}

func TestDecodeSkipsNonStringFields(t *testing.T) {
	var msg []byte
	msg = protowire.AppendTag(msg, 2, protowire.VarintType)
	msg = protowire.AppendVarint(msg, 42)
	msg = protowire.AppendTag(msg, 1, protowire.BytesType)
	msg = protowire.AppendBytes(msg, []byte("Census"))
	if got := Decode(rawHex(t, msg)); got != "Census" {
		t.Fatalf("Decode = %q", got)
	}
}

func TestDecodeFallsBackToUTF8Cleanup(t *testing.T) {
	// not a valid protobuf message but readable after dropping the junk bytes
	payload := append([]byte{0xff, 0xfe, 0x00, 0x01}, []byte("Population")...)
	if got := Decode(rawHex(t, payload)); got != "Population" {
		t.Fatalf("Decode(fallback) = %q", got)
	}
}

func TestDecodeSentinels(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", "garbage"},
		{"missing value", `{"other":"aa"}`},
		{"empty value", `{"value":""}`},
		{"bad hex", `{"value":"zz"}`},
		{"unreadable payload", rawHex(t, []byte{0x00, 0x01, 0x02})},
	}
	for _, c := range cases {
		if got := Decode(c.raw); got != Unknown {
			t.Fatalf("%s: Decode = %q, want %q", c.name, got, Unknown)
		}
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	for _, name := range []string{"Health", "Ministry of Finance", "población"} {
		if got := Decode(Encode(name)); got != name {
			t.Fatalf("Decode(Encode(%q)) = %q", name, got)
		}
	}
}
