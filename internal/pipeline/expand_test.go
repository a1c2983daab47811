package pipeline

import (
	"errors"
	"reflect"
	"testing"
)

func TestExpandNameGroup(t *testing.T) {
	cases := []struct {
		name  string
		group string
		want  []string
	}{
		{
			name:  "single name",
			group: "Thunnus albacares",
			want:  []string{"Thunnus albacares"},
		},
		{
			name:  "comma with abbreviation",
			group: "Thunnus albacares, T. obesus",
			want:  []string{"Thunnus albacares", "Thunnus obesus"},
		},
		{
			name:  "ampersand separator",
			group: "Thunnus albacares & T. obesus",
			want:  []string{"Thunnus albacares", "Thunnus obesus"},
		},
		{
			name:  "imported annotation stripped",
			group: "Thunnus albacares & T. obesus (Imported species)",
			want:  []string{"Thunnus albacares", "Thunnus obesus"},
		},
		{
			name:  "tribes annotation stripped",
			group: "Apis mellifera (Tribes of Apidae)",
			want:  []string{"Apis mellifera"},
		},
		{
			name:  "spp reduces to genus",
			group: "Genus spp.",
			want:  []string{"Genus"},
		},
		{
			name:  "sp without period",
			group: "Genus sp",
			want:  []string{"Genus"},
		},
		{
			name:  "except clause dropped",
			group: "Sardinops sagax except Sardinops neopilchardus",
			want:  []string{"Sardinops sagax"},
		},
		{
			name:  "abbreviation across different initials",
			group: "Katsuwonus pelamis, Thunnus albacares, T. obesus & K. pelamis",
			want:  []string{"Katsuwonus pelamis", "Thunnus albacares", "Thunnus obesus", "Katsuwonus pelamis"},
		},
		{
			name:  "duplicates preserved in order",
			group: "Thunnus obesus, Thunnus obesus",
			want:  []string{"Thunnus obesus", "Thunnus obesus"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExpandNameGroup(tc.group)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestExpandNameGroupEmpty(t *testing.T) {
	for _, input := range []string{"", "   "} {
		got, err := ExpandNameGroup(input)
		if err != nil {
			t.Fatal(err)
		}
		if got != nil {
			t.Fatalf("expected absent result for %q, got %v", input, got)
		}
	}
}

func TestExpandNameGroupUnresolvedAbbreviation(t *testing.T) {
	_, err := ExpandNameGroup("T. obesus")
	if err == nil {
		t.Fatal("expected error")
	}
	var expandErr *ExpandError
	if !errors.As(err, &expandErr) {
		t.Fatalf("unexpected error type: %T", err)
	}
	if expandErr.Group != "T. obesus" || expandErr.Token != "T. obesus" {
		t.Fatalf("error does not identify the source: %+v", expandErr)
	}
}

// The exclusion clause is intentionally lossy: "except" exclusions have no
// downstream representation, so the exclusion text is discarded rather than
// encoded as a negative constraint.
func TestExpandNameGroupExceptLosesExclusion(t *testing.T) {
	got, err := ExpandNameGroup("Clupea spp. except Clupea mirabilis")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []string{"Clupea"}) {
		t.Fatalf("got %v", got)
	}
}
