package moin

import "testing"

func TestHasEncoding(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"plain name", "FrontPage", false},
		{"hex run", "Aktuelle(c384)nderungen", true},
		{"uppercase hex", "Page(C3A4)", true},
		{"parenthesized non-hex", "Page(xyz)", false},
		{"single hex digit", "Page(a)", false},
		{"empty parens", "Page()", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasEncoding(tt.in); got != tt.want {
				t.Errorf("HasEncoding(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no escapes", "FrontPage", "FrontPage"},
		{"two-byte utf8", "Aktuelle(c384)nderungen", "AktuelleÄnderungen"},
		{"ascii space", "Front(20)Page", "Front Page"},
		{"multiple escapes", "(c3a4)nd(c3a4)rung", "ändärung"},
		{"multi-byte run in one escape", "Caf(c3a9732e)", "Cafés."},
		{"invalid utf8 byte replaced", "Bad(ff)Byte", "Bad�Byte"},
		{"odd hex length kept verbatim", "Odd(abc)Name", "Odd(abc)Name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decode(tt.in); got != tt.want {
				t.Errorf("Decode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"clean name stays", "AktuelleÄnderungen", "AktuelleÄnderungen"},
		{"colon becomes underscore", "Category:People", "Category_People"},
		{"all specials replaced", `a:b?c*d"e<f>g|h`, "a_b_c_d_e_f_g_h"},
		{"whitespace collapsed", "Front   Page\tTwo", "Front Page Two"},
		{"surrounding whitespace trimmed", "  Front Page  ", "Front Page"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
