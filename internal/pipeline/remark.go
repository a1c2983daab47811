package pipeline

import (
	"fmt"
	"strings"

	"caabdwc/internal"
)

// StandardNameRemark builds the taxonRemarks text for a standard-vernacular
// record: where the name came from, whether it was derived by expanding a
// name group, and whether the species is introduced. Wording and punctuation
// are fixed; downstream consumers match on them.
func StandardNameRemark(name, group, standard, introducedFlag string) string {
	remark := fmt.Sprintf("Standard name from %s.", standard)
	if name != group {
		remark += fmt.Sprintf(" Derived from original scientific name group %s", group)
		if !strings.HasSuffix(remark, ".") {
			remark += "."
		}
	}
	if introducedFlag == internal.IntroducedCode {
		remark += " Introduced."
	}
	return remark
}
