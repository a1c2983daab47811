package pipeline

import (
	"strings"

	"caabdwc/internal"
	"caabdwc/internal/dwc"
	"caabdwc/internal/util"
)

// Row predicates and field cleaners. All cleaners are total: absent or empty
// input yields "", and re-applying any cleaner to its own output is a no-op.

var bracketChars = strings.NewReplacer("[", "", "]", "")

// IsCurrentTaxon keeps rows that are not flagged non-current, whose species
// code is outside the reserved placeholder ranges (99xxx and 8xxxx), and that
// carry at least one of scientific name or display name.
func IsCurrentTaxon(r internal.Record) bool {
	if r.Has(internal.FieldNonCurrentFlag) {
		return false
	}
	spcode := r.Value(internal.FieldSpcode)
	if strings.HasPrefix(spcode, "99") || strings.HasPrefix(spcode, "8") {
		return false
	}
	return r.Has(internal.FieldScientificName) || r.Has(internal.FieldDisplayName)
}

// IsUsableTaxon is the late gate applied after renaming and merging: the
// resolved scientific name must be present, at least two characters, and
// start like a real scientific name.
func IsUsableTaxon(r internal.Record) bool {
	name := r.Value("scientificName")
	if len(name) < 2 {
		return false
	}
	return dwc.ScientificStart.MatchString(name)
}

// CleanScientific strips markup, repairs a leading stray quote left by the
// register's encoding, and canonicalizes whitespace.
func CleanScientific(s string) string {
	s = util.StripMarkup(s)
	if s == "" {
		return ""
	}
	if strings.HasPrefix(s, `"`) {
		s = strings.ReplaceAll(s, `"`, " ")
	}
	return util.NormaliseSpaces(s)
}

// CleanScientificAssigned additionally rejects placeholder rank values such
// as "Unassigned genus".
func CleanScientificAssigned(s string) string {
	s = CleanScientific(s)
	if strings.Contains(strings.ToLower(s), "unassigned") {
		return ""
	}
	return s
}

// CleanCommon rewrites a pipe-delimited common-name list: per phrase it
// strips markup, unwraps full [bracketing], and drops a leading indefinite
// article, preserving phrase order. Phrases that clean away entirely are
// dropped.
func CleanCommon(s string) string {
	if s == "" {
		return ""
	}
	var common []string
	for _, ss := range strings.Split(s, "|") {
		ss = util.StripMarkup(ss)
		if ss == "" {
			continue
		}
		if strings.HasPrefix(ss, "[") && strings.HasSuffix(ss, "]") {
			ss = strings.TrimSpace(ss[1 : len(ss)-1])
		}
		// Register entries mark informal names with partial [bracketing];
		// stray brackets are markup, not content. Removing them may expose
		// a leading article, so they go before the article drop.
		ss = strings.TrimSpace(bracketChars.Replace(ss))
		if strings.HasPrefix(ss, "a ") {
			ss = ss[2:]
		} else if strings.HasPrefix(ss, "an ") {
			ss = ss[3:]
		}
		ss = util.NormaliseSpaces(ss)
		if ss == "" {
			continue
		}
		common = append(common, ss)
	}
	return strings.Join(common, "|")
}

func CleanRank(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
