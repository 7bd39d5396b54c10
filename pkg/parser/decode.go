package parser

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// decodeUTF16BE converts the daily-balance export payload, which the bank
// ships as UTF-16 big-endian, into a UTF-8 string.
func decodeUTF16BE(data []byte) (string, error) {
	decoder := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	out, err := decoder.Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decoding utf-16be content: %w", err)
	}
	return strings.TrimPrefix(string(out), "\ufeff"), nil
}
