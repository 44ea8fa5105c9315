// Package timing converts heterogeneous race-time strings to elapsed seconds.
package timing

import (
	"regexp"
	"strconv"
	"strings"
)

// Patterns are anchored and tried in priority order; first match wins.
var (
	hoursRe   = regexp.MustCompile(`^(\d+):(\d{2}):(\d{2})\.(\d+)$`)
	minutesRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})\.(\d+)$`)
	secondsRe = regexp.MustCompile(`^(\d+)\.(\d+)$`)
)

// nonTimeTokens are status markers that appear in time columns.
var nonTimeTokens = map[string]bool{
	"DNF": true,
	"DNS": true,
	"DQ":  true,
	"-":   true,
}

// ToSeconds converts a race-time string to elapsed seconds. Returns nil for
// empty/whitespace input, status tokens, and anything that does not match one
// of the accepted formats. Malformed time strings are a data-quality fact,
// not an error. Fractional precision is preserved exactly as supplied.
//
//	"0:00:24.07" -> 24.07
//	"01:03.32"   -> 63.32
//	"1:39.58"    -> 99.58
//	"32.40"      -> 32.40
func ToSeconds(raw *string) *float64 {
	if raw == nil {
		return nil
	}
	s := strings.TrimSpace(*raw)
	if s == "" || nonTimeTokens[s] {
		return nil
	}

	if m := hoursRe.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		mm, _ := strconv.Atoi(m[2])
		ss, _ := strconv.Atoi(m[3])
		frac, err := strconv.ParseFloat("0."+m[4], 64)
		if err != nil {
			return nil
		}
		v := float64(h)*3600 + float64(mm)*60 + float64(ss) + frac
		return &v
	}

	if m := minutesRe.FindStringSubmatch(s); m != nil {
		mm, _ := strconv.Atoi(m[1])
		ss, _ := strconv.Atoi(m[2])
		frac, err := strconv.ParseFloat("0."+m[3], 64)
		if err != nil {
			return nil
		}
		v := float64(mm)*60 + float64(ss) + frac
		return &v
	}

	if secondsRe.MatchString(s) {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return &v
	}

	return nil
}
