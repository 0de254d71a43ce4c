package services

import "testing"

func TestNormalizeEmail(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercases", in: "Jane.Doe@Example.COM", want: "jane.doe@example.com"},
		{name: "trims", in: "  jane@example.com  ", want: "jane@example.com"},
		{name: "both", in: "\tJANE@EXAMPLE.COM\n", want: "jane@example.com"},
		{name: "already_clean", in: "jane@example.com", want: "jane@example.com"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeEmail(tc.in); got != tc.want {
				t.Fatalf("NormalizeEmail(%q)=%q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestValidEmail(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{email: "jane@example.com", want: true},
		{email: "j@x.co", want: true},
		{email: "", want: false},
		{email: "no-at-sign", want: false},
		{email: "@example.com", want: false},
		{email: "jane@", want: false},
		{email: "jane@nodot", want: false},
		{email: "two words@example.com", want: false},
	}
	for _, tc := range cases {
		t.Run(tc.email, func(t *testing.T) {
			if got := validEmail(tc.email); got != tc.want {
				t.Fatalf("validEmail(%q)=%v, want %v", tc.email, got, tc.want)
			}
		})
	}
}
