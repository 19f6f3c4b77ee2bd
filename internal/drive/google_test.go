package drive

import "testing"

func TestEscapeQuery(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Fisk App", "Fisk App"},
		{"Ada's Project", `Ada\'s Project`},
		{`back\slash`, `back\\slash`},
		{"", ""},
	}
	for _, tc := range cases {
		if got := escapeQuery(tc.in); got != tc.want {
			t.Errorf("escapeQuery(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
