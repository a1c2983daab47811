package pipeline

import "testing"

func TestStandardNameRemark(t *testing.T) {
	cases := []struct {
		name       string
		final      string
		group      string
		standard   string
		introduced string
		want       string
	}{
		{
			name:     "plain standard name",
			final:    "Thunnus maccoyii",
			group:    "Thunnus maccoyii",
			standard: "AS5300",
			want:     "Standard name from AS5300.",
		},
		{
			name:     "derived from group",
			final:    "Thunnus obesus",
			group:    "Thunnus albacares, T. obesus",
			standard: "AS5300",
			want:     "Standard name from AS5300. Derived from original scientific name group Thunnus albacares, T. obesus.",
		},
		{
			name:       "introduced",
			final:      "Cyprinus carpio",
			group:      "Cyprinus carpio",
			standard:   "AS5300",
			introduced: "I",
			want:       "Standard name from AS5300. Introduced.",
		},
		{
			name:       "derived and introduced",
			final:      "Oncorhynchus mykiss",
			group:      "Oncorhynchus mykiss & O. tshawytscha",
			standard:   "AS5300",
			introduced: "I",
			want:       "Standard name from AS5300. Derived from original scientific name group Oncorhynchus mykiss & O. tshawytscha. Introduced.",
		},
		{
			name:       "non-introduced flag ignored",
			final:      "Thunnus maccoyii",
			group:      "Thunnus maccoyii",
			standard:   "CAAB",
			introduced: "N",
			want:       "Standard name from CAAB.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := StandardNameRemark(tc.final, tc.group, tc.standard, tc.introduced)
			if got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}
