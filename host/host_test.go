package host

import "testing"

func TestParseIPv4(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"192.168.0.1", "192.168.0.1"},
		{"0x1.1.1.1", "1.1.1.1"},
		{"0xC0.0x00.0x02.0xEB", "192.0.2.235"},
		{"0300.0000.0002.0353", "192.0.2.235"},
		{"1.1.1", "1.1.0.1"},
		{"1.0x10", "1.0.0.16"},
	}
	for _, tt := range tests {
		h, err := Parse(tt.in, true)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", tt.in, err)
			continue
		}
		if h.Kind != KindIPv4 {
			t.Errorf("Parse(%q) kind = %v, want IPv4", tt.in, h.Kind)
			continue
		}
		if got := h.String(); got != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseIPv4Overflow(t *testing.T) {
	if _, err := Parse("256.0.0.1", true); err == nil {
		t.Errorf("Parse(256.0.0.1) expected failure")
	}
	if _, err := Parse("1.2.3.4.5", true); err == nil {
		t.Errorf("Parse(1.2.3.4.5) expected failure")
	}
}

func TestParseIPv6(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"::1", "::1"},
		{"::", "::"},
		{"2001:db8::1", "2001:db8::1"},
		{"1:2:3:4:5:6:7:8", "1:2:3:4:5:6:7:8"},
		{"::ffff:192.0.2.1", "::ffff:c000:201"},
	}
	for _, tt := range tests {
		h, err := Parse("["+tt.in+"]", true)
		if err != nil {
			t.Errorf("Parse([%q]) error: %v", tt.in, err)
			continue
		}
		if h.Kind != KindIPv6 {
			t.Errorf("Parse([%q]) kind = %v, want IPv6", tt.in, h.Kind)
			continue
		}
		if got := h.String(); got != "["+tt.want+"]" {
			t.Errorf("Parse([%q]) = %q, want [%q]", tt.in, got, tt.want)
		}
	}
}

func TestParseDomain(t *testing.T) {
	h, err := Parse("EXAMPLE.com", true)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if h.Kind != KindDomain || h.Domain != "example.com" {
		t.Fatalf("Parse(EXAMPLE.com) = %+v, want domain example.com", h)
	}
}

func TestParseOpaque(t *testing.T) {
	h, err := Parse("Example.Com", false)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if h.Kind != KindOpaque || h.Opaque != "Example.Com" {
		t.Fatalf("Parse opaque = %+v, want opaque Example.Com", h)
	}
}

func TestParseEmpty(t *testing.T) {
	h, err := Parse("", false)
	if err != nil || h.Kind != KindEmpty {
		t.Fatalf("Parse(\"\", false) = %+v, %v, want empty host", h, err)
	}
	if _, err := Parse("", true); err == nil {
		t.Fatalf("Parse(\"\", true) expected failure")
	}
}
