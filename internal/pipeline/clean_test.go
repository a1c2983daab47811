package pipeline

import (
	"testing"

	"caabdwc/internal"
)

func record(fields map[string]string) internal.Record {
	r := internal.NewRecord()
	for k, v := range fields {
		r.Set(k, v)
	}
	return r
}

func TestIsCurrentTaxon(t *testing.T) {
	cases := []struct {
		name   string
		fields map[string]string
		want   bool
	}{
		{
			name:   "current with scientific name",
			fields: map[string]string{internal.FieldSpcode: "37441001", internal.FieldScientificName: "Thunnus maccoyii"},
			want:   true,
		},
		{
			name:   "current with display name only",
			fields: map[string]string{internal.FieldSpcode: "37441002", internal.FieldDisplayName: "Southern Bluefin Tuna"},
			want:   true,
		},
		{
			name:   "non-current flag set",
			fields: map[string]string{internal.FieldSpcode: "37441001", internal.FieldScientificName: "Thunnus maccoyii", internal.FieldNonCurrentFlag: "Y"},
			want:   false,
		},
		{
			name:   "reserved 99 range",
			fields: map[string]string{internal.FieldSpcode: "99123", internal.FieldScientificName: "Thunnus maccoyii"},
			want:   false,
		},
		{
			name:   "reserved 8 range",
			fields: map[string]string{internal.FieldSpcode: "80001", internal.FieldScientificName: "Thunnus maccoyii"},
			want:   false,
		},
		{
			name:   "no names at all",
			fields: map[string]string{internal.FieldSpcode: "37441001"},
			want:   false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsCurrentTaxon(record(tc.fields)); got != tc.want {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestIsUsableTaxon(t *testing.T) {
	cases := []struct {
		name string
		sci  string
		want bool
	}{
		{name: "proper name", sci: "Thunnus maccoyii", want: true},
		{name: "absent", sci: "", want: false},
		{name: "single character", sci: "T", want: false},
		{name: "lowercase placeholder", sci: "unknown sp", want: false},
		{name: "punctuation start", sci: "?Thunnus", want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := internal.NewRecord()
			r.Set("scientificName", tc.sci)
			if got := IsUsableTaxon(r); got != tc.want {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestCleanScientific(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "quote artifact", input: `"Genus species"`, want: "Genus species"},
		{name: "markup", input: "<i>Thunnus  maccoyii</i>", want: "Thunnus maccoyii"},
		{name: "whitespace runs", input: "  Thunnus \t maccoyii ", want: "Thunnus maccoyii"},
		{name: "empty", input: "", want: ""},
		{name: "whitespace only", input: "   ", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CleanScientific(tc.input)
			if got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
			if again := CleanScientific(got); again != got {
				t.Fatalf("not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestCleanScientificAssigned(t *testing.T) {
	if got := CleanScientificAssigned("Unassigned genus"); got != "" {
		t.Fatalf("placeholder kept: %q", got)
	}
	if got := CleanScientificAssigned("Thunnus"); got != "Thunnus" {
		t.Fatalf("got %q", got)
	}
}

func TestCleanCommon(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "articles and brackets", input: "a Red Fish|[Spotted] Cod|an Eel", want: "Red Fish|Spotted Cod|Eel"},
		{name: "fully bracketed", input: "[Eel]", want: "Eel"},
		{name: "bracketed article", input: "[a] Tuna", want: "Tuna"},
		{name: "bracketed article in list", input: "[an] Eel|Cod", want: "Eel|Cod"},
		{name: "drops empty phrases", input: "Cod| |Eel", want: "Cod|Eel"},
		{name: "empty", input: "", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CleanCommon(tc.input)
			if got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
			if again := CleanCommon(got); again != got {
				t.Fatalf("not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestCleanRank(t *testing.T) {
	if got := CleanRank("  Species "); got != "species" {
		t.Fatalf("got %q", got)
	}
	if got := CleanRank(""); got != "" {
		t.Fatalf("got %q", got)
	}
	if got := CleanRank(CleanRank("  Species ")); got != "species" {
		t.Fatalf("not idempotent: %q", got)
	}
}
