package link

import (
	"encoding/base64"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_Example(t *testing.T) {
	link, err := Encode("https://example.com", "abc123", "s3cr3t", "notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/r/31fP8h7DaUREFjZMAcRnKkQb2Lx3Juto", link)

	parsed, err := Decode(link)
	require.NoError(t, err)
	assert.Equal(t, ParsedLink{ID: "abc123", Password: "s3cr3t", FileName: "notes.txt"}, parsed)
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		domain   string
		id       string
		password string
		fileName string
	}{
		{name: "text secret", domain: "https://example.com", id: "abc123", password: "s3cr3t"},
		{
			name:     "uuid id",
			domain:   "https://ots.example.org",
			id:       "6f1c1d9e-8a4b-4b53-9a43-1f0d7f0c2a11",
			password: "Xk9pQ2mN7vR4tY8w",
		},
		{name: "file secret", domain: "http://localhost:8080", id: "42", password: "pw", fileName: "report final.pdf"},
		{name: "unicode file name", domain: "https://example.com", id: "x", password: "y", fileName: "отчёт-2024.txt"},
		{name: "file name with separators", domain: "https://example.com", id: "x", password: "y", fileName: "a:b:c.txt"},
		{name: "domain with trailing slash", domain: "https://example.com/", id: "id", password: "pw"},
		{name: "domain with path", domain: "https://example.com/share", id: "id", password: "pw", fileName: "f"},
		{name: "password with url characters", domain: "https://example.com", id: "id", password: "p/w?#&=+% "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link, err := Encode(tt.domain, tt.id, tt.password, tt.fileName)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(link, strings.TrimRight(tt.domain, "/")+"/r/"))

			parsed, err := Decode(link)
			require.NoError(t, err)
			assert.Equal(t, ParsedLink{ID: tt.id, Password: tt.password, FileName: tt.fileName}, parsed)
		})
	}
}

func TestEncode_TokenIsURLSafe(t *testing.T) {
	link, err := Encode("https://example.com", "id", "p/w+=?", "name with spaces.txt")
	require.NoError(t, err)

	token := link[strings.LastIndex(link, "/")+1:]
	assert.Equal(t, url.PathEscape(token), token)
	assert.NotContains(t, token, "=")
}

func TestEncode_Errors(t *testing.T) {
	tests := []struct {
		name     string
		domain   string
		id       string
		password string
		fileName string
		wantErr  error
	}{
		{name: "empty domain", domain: "", id: "id", password: "pw", wantErr: ErrEmptyDomain},
		{name: "slash domain", domain: "/", id: "id", password: "pw", wantErr: ErrEmptyDomain},
		{name: "empty id", domain: "https://example.com", id: "", password: "pw", wantErr: ErrEmptyID},
		{name: "empty password", domain: "https://example.com", id: "id", password: "", wantErr: ErrEmptyPassword},
		{name: "separator in id", domain: "https://example.com", id: "a:b", password: "pw", wantErr: ErrSeparatorInField},
		{name: "separator in password", domain: "https://example.com", id: "id", password: "p:w", wantErr: ErrSeparatorInField},
		{name: "invalid utf8 id", domain: "https://example.com", id: "abc\xfe", password: "pw", wantErr: ErrInvalidUTF8},
		{name: "invalid utf8 password", domain: "https://example.com", id: "id", password: "s3\xffcr3t", wantErr: ErrInvalidUTF8},
		{name: "invalid utf8 file name", domain: "https://example.com", id: "id", password: "pw", fileName: "report\xff.pdf", wantErr: ErrInvalidUTF8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(tt.domain, tt.id, tt.password, tt.fileName)
			assert.ErrorIs(t, err, ErrEncode)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDecode_LegacyBase64(t *testing.T) {
	tests := []struct {
		name string
		link string
		want ParsedLink
	}{
		{
			name: "with file name",
			link: "https://example.com/r/" + url.PathEscape("YWJjMTIzOnMzY3IzdDpub3Rlcy50eHQ="),
			want: ParsedLink{ID: "abc123", Password: "s3cr3t", FileName: "notes.txt"},
		},
		{
			name: "padding percent-encoded",
			link: "https://example.com/r/YWJjMTIzOnMzY3IzdA%3D%3D",
			want: ParsedLink{ID: "abc123", Password: "s3cr3t"},
		},
		{
			name: "padding left raw",
			link: "https://example.com/r/YWJjMTIzOnMzY3IzdA==",
			want: ParsedLink{ID: "abc123", Password: "s3cr3t"},
		},
		{
			name: "padding stripped",
			link: "https://example.com/r/YWJjMTIzOnMzY3IzdA",
			want: ParsedLink{ID: "abc123", Password: "s3cr3t"},
		},
		{
			name: "encodeURIComponent output",
			link: "https://example.com/r/aWQwOnA%2Fdz4wOmZ%2BMC50eHQ%3D",
			want: ParsedLink{ID: "id0", Password: "p?w>0", FileName: "f~0.txt"},
		},
		{
			name: "file name with separators",
			link: "https://example.com/r/aWQ6cHc6YTpiOmMudHh0",
			want: ParsedLink{ID: "id", Password: "pw", FileName: "a:b:c.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := Decode(tt.link)
			require.NoError(t, err)
			assert.Equal(t, tt.want, parsed)
		})
	}
}

func TestDecode_LegacyMatchesCurrent(t *testing.T) {
	id, password, fileName := "6f1c1d9e-8a4b-4b53-9a43-1f0d7f0c2a11", "Xk9pQ2mN7vR4tY8w", "photo.png"

	current, err := Encode("https://example.com", id, password, fileName)
	require.NoError(t, err)

	payload := base64.StdEncoding.EncodeToString([]byte(id + ":" + password + ":" + fileName))
	legacy := "https://example.com/r/" + url.PathEscape(payload)

	fromCurrent, err := Decode(current)
	require.NoError(t, err)
	fromLegacy, err := Decode(legacy)
	require.NoError(t, err)

	assert.Equal(t, fromCurrent, fromLegacy)
}

func TestDecode_Base58Precedence(t *testing.T) {
	// "cUE6bVRP" is valid in both alphabets:
	// base58 -> "G:W1!v", base64 -> "qA:mTO".
	const token = "cUE6bVRP"

	asBase64, ok := Base64Decoder{}.Decode(token)
	require.True(t, ok)
	assert.Equal(t, ParsedLink{ID: "qA", Password: "mTO"}, asBase64)

	parsed, err := Decode("https://example.com/r/" + token)
	require.NoError(t, err)
	assert.Equal(t, ParsedLink{ID: "G", Password: "W1!v"}, parsed)
}

func TestDecode_Base64NotMisreadAsBase58(t *testing.T) {
	for _, payload := range []string{"abc123:s3cr3t:notes.txt", "abc123:s3cr3t", "id:pw:a:b:c.txt"} {
		token := base64.StdEncoding.EncodeToString([]byte(payload))
		_, ok := Base58Decoder{}.Decode(token)
		assert.False(t, ok, payload)
	}
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		link string
	}{
		{name: "empty string", link: ""},
		{name: "no path", link: "https://example.com"},
		{name: "root path", link: "https://example.com/"},
		{name: "reveal path without token", link: "https://example.com/r/"},
		{name: "reveal path only", link: "https://example.com/r"},
		{name: "wrong prefix", link: "https://example.com/x/31fP8h7DaUREFjZMAcRnKkQb2Lx3Juto"},
		{name: "missing prefix", link: "https://example.com/31fP8h7DaUREFjZMAcRnKkQb2Lx3Juto"},
		{name: "not a url", link: "://bad url"},
		{name: "garbage token", link: "https://example.com/r/%%%"},
		{name: "neither encoding", link: "https://example.com/r/!!!!"},
		{name: "no separator", link: "https://example.com/r/" + mustBase58("justanid")},
		{name: "empty id", link: "https://example.com/r/" + mustBase58(":pw")},
		{name: "empty password", link: "https://example.com/r/" + mustBase58("id:")},
		{name: "empty id in base64", link: "https://example.com/r/" + base64.StdEncoding.EncodeToString([]byte(":pw"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := Decode(tt.link)
			assert.ErrorIs(t, err, ErrInvalidLink)
			assert.Equal(t, ParsedLink{}, parsed)
		})
	}
}

func TestDecode_EmptyFileNameIsAbsent(t *testing.T) {
	parsed, err := Decode("https://example.com/r/" + mustBase58("id:pw:"))
	require.NoError(t, err)
	assert.Equal(t, ParsedLink{ID: "id", Password: "pw"}, parsed)
}

func TestCodec_DecodersTriedInOrder(t *testing.T) {
	var calls []string
	first := DecoderFunc(func(token string) (ParsedLink, bool) {
		calls = append(calls, "first")
		return ParsedLink{}, false
	})
	second := DecoderFunc(func(token string) (ParsedLink, bool) {
		calls = append(calls, "second")
		return ParsedLink{ID: "from", Password: "second"}, true
	})
	third := DecoderFunc(func(token string) (ParsedLink, bool) {
		calls = append(calls, "third")
		return ParsedLink{ID: "from", Password: "third"}, true
	})

	parsed, err := NewCodec(first, second, third).Decode("https://example.com/r/anything")
	require.NoError(t, err)
	assert.Equal(t, "second", parsed.Password)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestCodec_NoDecodersTriedForMalformedURL(t *testing.T) {
	called := false
	d := DecoderFunc(func(string) (ParsedLink, bool) {
		called = true
		return ParsedLink{ID: "a", Password: "b"}, true
	})

	_, err := NewCodec(d).Decode("https://example.com/")
	assert.ErrorIs(t, err, ErrInvalidLink)
	assert.False(t, called)
}

func TestCodec_ConcurrentUse(t *testing.T) {
	codec := DefaultCodec()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := strings.Repeat("a", i+1)
			link, err := codec.Encode("https://example.com", id, "pw", "")
			assert.NoError(t, err)
			parsed, err := codec.Decode(link)
			assert.NoError(t, err)
			assert.Equal(t, id, parsed.ID)
		}(i)
	}
	wg.Wait()
}

func mustBase58(s string) string {
	return base58.Encode([]byte(s))
}
