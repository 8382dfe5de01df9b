package fetcher

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeText converts a fetched payload to a string. The source site
// serves a mix of UTF-8 and GB18030 pages, so the order is: strip a BOM,
// accept valid UTF-8 as-is, otherwise try GB18030, and as a last resort
// decode as UTF-8 with replacement runes.
func DecodeText(raw []byte) string {
	raw = bytes.TrimPrefix(raw, utf8BOM)

	if utf8.Valid(raw) {
		return string(raw)
	}

	if decoded, err := simplifiedchinese.GB18030.NewDecoder().Bytes(raw); err == nil {
		s := string(decoded)
		if !strings.ContainsRune(s, utf8.RuneError) {
			return s
		}
	}

	return strings.ToValidUTF8(string(raw), string(utf8.RuneError))
}
