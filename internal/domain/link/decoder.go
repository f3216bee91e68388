package link

import (
	"encoding/base64"
	"strings"
	"unicode/utf8"

	"github.com/mr-tron/base58"
)

// Decoder turns a percent-decoded path token into a ParsedLink.
// It reports false when the token is not in its format.
type Decoder interface {
	Decode(token string) (ParsedLink, bool)
}

// DecoderFunc adapts a plain function to the Decoder interface.
type DecoderFunc func(token string) (ParsedLink, bool)

func (f DecoderFunc) Decode(token string) (ParsedLink, bool) {
	return f(token)
}

// Base58Decoder reads links in the current format.
type Base58Decoder struct{}

func (Base58Decoder) Decode(token string) (ParsedLink, bool) {
	raw, err := base58.Decode(token)
	if err != nil {
		return ParsedLink{}, false
	}
	return parsePayload(raw)
}

// Base64Decoder reads links issued before the switch to base58. Missing
// padding is tolerated the same way browsers' atob tolerates it.
type Base64Decoder struct{}

func (Base64Decoder) Decode(token string) (ParsedLink, bool) {
	raw, err := base64.RawStdEncoding.DecodeString(strings.TrimRight(token, "="))
	if err != nil {
		return ParsedLink{}, false
	}
	return parsePayload(raw)
}

// parsePayload splits "id:password[:fileName]". Everything after the second
// separator is the file name, separators included.
func parsePayload(raw []byte) (ParsedLink, bool) {
	if len(raw) == 0 || !utf8.Valid(raw) {
		return ParsedLink{}, false
	}

	parts := strings.SplitN(string(raw), separator, 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return ParsedLink{}, false
	}

	parsed := ParsedLink{
		ID:       parts[0],
		Password: parts[1],
	}
	if len(parts) == 3 {
		parsed.FileName = parts[2]
	}
	return parsed, true
}
