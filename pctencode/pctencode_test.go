package pctencode

import (
	"strings"
	"testing"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		set  Set
		want string
	}{
		{"c0 control", "a\x01b", C0, "a%01b"},
		{"fragment space", "a b", Fragment, "a%20b"},
		{"query hash", "a#b", Query, "a%23b"},
		{"special query quote", "a'b", SpecialQuery, "a%27b"},
		{"path question", "a?b", Path, "a%3Fb"},
		{"userinfo colon", "user:pass", Userinfo, "user%3Apass"},
		{"no encoding needed", "abc123", Path, "abc123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Encode(tt.in, tt.set); got != tt.want {
				t.Errorf("Encode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEncodeRune(t *testing.T) {
	var b strings.Builder
	EncodeRune(&b, 'é', Path)
	if got := b.String(); got != "%C3%A9" {
		t.Errorf("EncodeRune(é) = %q, want %%C3%%A9", got)
	}
}
