// Package link builds and parses shareable secret links.
//
// A link looks like
//
//	<domain>/r/<percent-encoded base58("id:password[:fileName]")>
//
// and carries everything the recipient needs: the record ID to fetch and the
// password to decrypt it. Links issued with base64 instead of base58 are still
// accepted when decoding.
package link

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/mr-tron/base58"
)

const (
	// RevealPath is the path segment that precedes the token.
	RevealPath = "r"

	separator = ":"
)

// ParsedLink is the content of a decoded link. FileName is empty for text secrets.
type ParsedLink struct {
	ID       string `json:"id"`
	Password string `json:"password"`
	FileName string `json:"fileName,omitempty"`
}

// Codec encodes links in the current format and decodes them by trying its
// decoders in order. It holds no mutable state and is safe for concurrent use.
type Codec struct {
	decoders []Decoder
}

// NewCodec returns a codec that tries decoders in the given order.
func NewCodec(decoders ...Decoder) *Codec {
	return &Codec{decoders: decoders}
}

// DefaultCodec decodes base58 links first and falls back to legacy base64.
func DefaultCodec() *Codec {
	return NewCodec(Base58Decoder{}, Base64Decoder{})
}

var defaultCodec = DefaultCodec()

// Encode builds a link with the default codec.
func Encode(domain, id, password, fileName string) (string, error) {
	return defaultCodec.Encode(domain, id, password, fileName)
}

// Decode parses a link with the default codec.
func Decode(rawURL string) (ParsedLink, error) {
	return defaultCodec.Decode(rawURL)
}

// Encode builds the shareable URL for a record. fileName may be empty.
func (c *Codec) Encode(domain, id, password, fileName string) (string, error) {
	domain = strings.TrimRight(domain, "/")
	switch {
	case domain == "":
		return "", fmt.Errorf("%w: %w", ErrEncode, ErrEmptyDomain)
	case id == "":
		return "", fmt.Errorf("%w: %w", ErrEncode, ErrEmptyID)
	case password == "":
		return "", fmt.Errorf("%w: %w", ErrEncode, ErrEmptyPassword)
	case strings.Contains(id, separator), strings.Contains(password, separator):
		return "", fmt.Errorf("%w: %w", ErrEncode, ErrSeparatorInField)
	case !utf8.ValidString(id), !utf8.ValidString(password), !utf8.ValidString(fileName):
		return "", fmt.Errorf("%w: %w", ErrEncode, ErrInvalidUTF8)
	}

	parts := []string{id, password}
	if fileName != "" {
		parts = append(parts, fileName)
	}
	token := base58.Encode([]byte(strings.Join(parts, separator)))

	return strings.Join([]string{domain, RevealPath, url.PathEscape(token)}, "/"), nil
}

// Decode extracts the record ID, password and optional file name from a link.
// Any URL that is not a valid link yields ErrInvalidLink.
func (c *Codec) Decode(rawURL string) (ParsedLink, error) {
	token, err := extractToken(rawURL)
	if err != nil {
		return ParsedLink{}, err
	}

	for _, d := range c.decoders {
		if parsed, ok := d.Decode(token); ok {
			return parsed, nil
		}
	}
	return ParsedLink{}, fmt.Errorf("%w: unrecognized token", ErrInvalidLink)
}

// extractToken returns the percent-decoded final path segment, which must
// directly follow the reveal path. The domain itself may carry a path prefix.
func extractToken(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidLink, err)
	}

	segments := strings.Split(strings.TrimSuffix(u.EscapedPath(), "/"), "/")
	n := len(segments)
	if n < 3 || segments[n-2] != RevealPath || segments[n-1] == "" {
		return "", fmt.Errorf("%w: missing /%s/ token", ErrInvalidLink, RevealPath)
	}

	token, err := url.PathUnescape(segments[n-1])
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidLink, err)
	}
	if token == "" {
		return "", fmt.Errorf("%w: empty token", ErrInvalidLink)
	}
	return token, nil
}
