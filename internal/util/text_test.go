package util

import "testing"

func TestStripMarkup(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain text untouched", input: "Thunnus maccoyii", want: "Thunnus maccoyii"},
		{name: "italics tags", input: "<i>Thunnus</i> maccoyii", want: "Thunnus maccoyii"},
		{name: "nested tags", input: "<p><b>Southern</b> Bluefin</p>", want: "Southern Bluefin"},
		{name: "entities", input: "Fish &amp; Chips", want: "Fish & Chips"},
		{name: "whitespace runs", input: "a\t b\n c", want: "a b c"},
		{name: "empty", input: "", want: ""},
		{name: "markup only", input: "<br/>", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := StripMarkup(tc.input)
			if got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestNormaliseSpaces(t *testing.T) {
	if got := NormaliseSpaces("  a   b  "); got != "a b" {
		t.Fatalf("got %q", got)
	}
}
