package mapping

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
)

// repairEncodings are the legacy Chinese encodings tried, in priority
// order, when reversing a mis-decoded string. GBK is the same table as
// Windows cp936, so two candidates cover the original three.
var repairEncodings = []encoding.Encoding{
	simplifiedchinese.GB18030,
	simplifiedchinese.GBK,
}

// Repair attempts to fix mojibake in a Chinese-name field.
//
// The upstream site sometimes serves Chinese text whose legacy-encoded
// bytes were decoded as if they were a different charset, leaving
// gibberish with no Han characters. The reversible pattern is: re-encode
// the gibberish with the legacy encoding, then decode those bytes as
// UTF-8. A candidate only counts as a fix when the result contains a
// genuine CJK character; otherwise the input is returned unchanged.
// Repair never fails and never touches text that already looks correct.
func Repair(s string) string {
	if s == "" {
		return s
	}

	ss := strings.TrimSpace(s)
	if containsCJK(ss) {
		return s
	}

	for _, enc := range repairEncodings {
		b, err := enc.NewEncoder().Bytes([]byte(ss))
		if err != nil {
			continue
		}
		if !utf8.Valid(b) {
			continue
		}
		fixed := string(b)
		if containsCJK(fixed) {
			return fixed
		}
	}

	return s
}

func containsCJK(s string) bool {
	for _, r := range s {
		if isCJK(r) {
			return true
		}
	}
	return false
}
