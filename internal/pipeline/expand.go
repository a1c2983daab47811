package pipeline

import (
	"fmt"
	"regexp"
	"strings"
)

// A scientific name group is one register field denoting one or more species,
// e.g. "Thunnus albacares, T. obesus & T. maccoyii (Imported species)".
// Abbreviated genus tokens ("T.") refer back to the most recent full genus
// with the same initial earlier in the same string.

var (
	reImportedGroup = regexp.MustCompile(`(?i)^(.+?)\s*\(imported[^)]*\)\s*$`)
	reTribesGroup   = regexp.MustCompile(`(?i)^(.+?)\s*\(tribes[^)]*\)\s*$`)
	reExceptClause  = regexp.MustCompile(`(?i)^(.+?)\s+except\s+.+$`)
	reSppSuffix     = regexp.MustCompile(`^(.+?)\s+spp?\.?$`)
	reGenusAbbrev   = regexp.MustCompile(`^[A-Z]\.$`)
	reGroupSplit    = regexp.MustCompile(`[,&]`)
)

// ExpandError reports a name group that cannot be resolved: an abbreviated
// genus with no antecedent full genus in the same string. The parser never
// substitutes a default genus.
type ExpandError struct {
	Token string
	Group string
}

func (e *ExpandError) Error() string {
	return fmt.Sprintf("cannot resolve genus abbreviation %q in name group %q", e.Token, e.Group)
}

// ExpandNameGroup splits a name group into its fully-resolved scientific
// names, preserving left-to-right order. Blank input yields (nil, nil). The
// genus-abbreviation table lives and dies inside this call.
func ExpandNameGroup(group string) ([]string, error) {
	s := strings.TrimSpace(group)
	if s == "" {
		return nil, nil
	}

	if m := reImportedGroup.FindStringSubmatch(s); m != nil {
		s = m[1]
	}
	if m := reTribesGroup.FindStringSubmatch(s); m != nil {
		s = m[1]
	}

	genera := map[byte]string{}
	var names []string
	for _, token := range reGroupSplit.Split(s, -1) {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if m := reExceptClause.FindStringSubmatch(token); m != nil {
			// The exclusion is dropped, not encoded; the register has no
			// downstream representation for negative constraints.
			token = m[1]
		}
		if m := reSppSuffix.FindStringSubmatch(token); m != nil {
			token = m[1]
		}

		first := token
		rest := ""
		if i := strings.IndexAny(token, " \t"); i >= 0 {
			first = token[:i]
			rest = strings.TrimSpace(token[i+1:])
		}

		if reGenusAbbrev.MatchString(first) {
			genus, ok := genera[first[0]]
			if !ok {
				return nil, &ExpandError{Token: token, Group: group}
			}
			if rest == "" {
				names = append(names, genus)
			} else {
				names = append(names, genus+" "+rest)
			}
			continue
		}

		genera[first[0]] = first
		names = append(names, token)
	}

	return names, nil
}
