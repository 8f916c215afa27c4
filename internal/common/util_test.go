package common

import (
	"testing"
)

// ---------- WipeByteArray ----------

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}

// ---------- Bearer helpers ----------

func TestBearerValue(t *testing.T) {
	if got := BearerValue("A1"); got != "Bearer A1" {
		t.Fatalf("unexpected header value %q", got)
	}
}

func TestParseBearer(t *testing.T) {
	tests := []struct {
		in     string
		token  string
		wantOK bool
	}{
		{"Bearer A1", "A1", true},
		{"Bearer  A2 ", "A2", true},
		{"Bearer ", "", false},
		{"Basic abc", "", false},
		{"", "", false},
	}

	for _, tc := range tests {
		token, ok := ParseBearer(tc.in)
		if ok != tc.wantOK || token != tc.token {
			t.Fatalf("ParseBearer(%q) = (%q, %v), want (%q, %v)", tc.in, token, ok, tc.token, tc.wantOK)
		}
	}
}

func TestParseBearer_RoundTrip(t *testing.T) {
	token, ok := ParseBearer(BearerValue("xyz"))
	if !ok || token != "xyz" {
		t.Fatalf("round trip failed: %q %v", token, ok)
	}
}
