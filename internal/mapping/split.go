// Package mapping normalizes extracted tables into canonical ROM-name
// mapping records: english_name, chinese_name, source_id, plus an
// open-ended extras map for every column it does not recognize.
package mapping

import (
	"regexp"
	"strings"
	"unicode"
)

// PairColumnHeader is the site's label for a column packing the English
// and Chinese names into one string with no delimiter.
const PairColumnHeader = "中英对照"

// maxReattachTokenLen bounds the uppercase ASCII token glued to the first
// CJK character that SplitPair reclassifies as part of the Chinese name
// (region/version abbreviations like "EA" or "GB2").
const maxReattachTokenLen = 4

var (
	innerSpaceRe = regexp.MustCompile(`\s+`)
	// ASCII characters considered part of a name token when scanning back
	// from the first CJK character.
	tokenCharRe = regexp.MustCompile(`[A-Za-z0-9&._+\-]`)
)

// isCJK reports whether r falls in the CJK Unified Ideographs range.
// Used throughout as the signal that text is genuine Chinese.
func isCJK(r rune) bool {
	return r >= 0x4e00 && r <= 0x9fff
}

// SplitPair splits a composite cell like
//
//	"Light Crusader (JE) 光之十字军战士(日欧)"
//
// into its English and Chinese halves. The Chinese part starts at the
// first CJK character; an uppercase token of at most four letters/digits
// fused directly onto that character moves with it.
func SplitPair(s string) (english, chinese string) {
	ss := innerSpaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
	if ss == "" {
		return "", ""
	}

	runes := []rune(ss)
	boundary := -1
	for i, r := range runes {
		if isCJK(r) {
			boundary = i
			break
		}
	}
	if boundary < 0 {
		return ss, ""
	}

	boundary = reattachToken(runes, boundary)

	english = strings.TrimRight(string(runes[:boundary]), " ")
	chinese = strings.TrimLeft(string(runes[boundary:]), " ")
	return english, chinese
}

// reattachToken scans back from the first CJK character over adjacent
// ASCII name characters. If that token is short, uppercase, and starts at
// a word boundary, the split moves to the token's start so abbreviations
// glued onto the localized title stay with it.
func reattachToken(runes []rune, boundary int) int {
	j := boundary
	for j > 0 && runes[j-1] < 128 && tokenCharRe.MatchString(string(runes[j-1])) {
		j--
	}
	if j == boundary {
		return boundary
	}

	token := string(runes[j:boundary])
	atWordStart := j == 0 || runes[j-1] == ' '
	if atWordStart && len(token) <= maxReattachTokenLen && isUpperToken(token) {
		return j
	}
	return boundary
}

// isUpperToken mirrors str.isupper: at least one cased character and no
// lowercase ones.
func isUpperToken(s string) bool {
	hasCased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasCased = true
		}
	}
	return hasCased
}

// ExtractPairColumn rewrites a table around its composite name column.
// It is a no-op unless the headers contain the pair column, in which case
// the output schema becomes exactly (english_name, chinese_name) and rows
// whose split yields nothing are dropped.
func ExtractPairColumn(headers []string, rows [][]string) ([]string, [][]string) {
	idx := -1
	for i, h := range headers {
		if h == PairColumnHeader {
			idx = i
			break
		}
	}
	if idx < 0 {
		return headers, rows
	}

	outHeaders := []string{"english_name", "chinese_name"}
	outRows := make([][]string, 0, len(rows))

	for _, r := range rows {
		if idx >= len(r) {
			continue
		}
		cell := strings.TrimSpace(r[idx])
		if cell == "" {
			continue
		}
		en, cn := SplitPair(cell)
		if en == "" && cn == "" {
			continue
		}
		outRows = append(outRows, []string{en, cn})
	}

	return outHeaders, outRows
}
