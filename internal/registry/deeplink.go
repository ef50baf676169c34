package registry

import (
	"strings"
)

const upperhex = "0123456789ABCDEF"

// BuildDeepLink builds the sms: URI that opens a native SMS composer
// pre-filled with the given recipient and message body
func BuildDeepLink(recipient, message string) string {
	return "sms:" + recipient + "?body=" + encodeBody(message)
}

// BuildShortURL joins the externally visible base URL with the redirect
// path for a short ID
func BuildShortURL(baseURL, shortID string) string {
	return strings.TrimRight(baseURL, "/") + "/s/" + shortID
}

// encodeBody percent-encodes a message body for embedding in an sms: URI.
// Unreserved characters pass through untouched; everything else, including
// spaces and all multi-byte UTF-8 sequences, is escaped byte by byte.
func encodeBody(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if isBodySafe(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0xf])
	}

	return b.String()
}

// isBodySafe reports whether a byte may appear unescaped in the body
// query value. The set matches the characters SMS composers accept
// verbatim: alphanumerics plus - _ . ! ~ * ' ( )
func isBodySafe(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
