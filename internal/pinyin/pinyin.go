// Package pinyin derives searchable phonetic keys from athlete names.
package pinyin

import (
	"strings"

	gopinyin "github.com/mozillazg/go-pinyin"
)

// Key converts a name to its phonetic search key: full pinyin followed by
// first-letter initials, e.g. "姚致涵" -> "yaozhihan yzh". Non-Chinese runes
// pass through lower-cased, so ASCII names remain searchable as-is.
func Key(name string) string {
	if name == "" {
		return ""
	}

	full := gopinyin.NewArgs()
	full.Fallback = passthrough

	initials := gopinyin.NewArgs()
	initials.Style = gopinyin.FirstLetter
	initials.Fallback = passthrough

	fullKey := strings.Join(gopinyin.LazyPinyin(name, full), "")
	initialKey := strings.Join(gopinyin.LazyPinyin(name, initials), "")

	return strings.ToLower(fullKey + " " + initialKey)
}

func passthrough(r rune, a gopinyin.Args) []string {
	return []string{string(r)}
}
