package httpx

import "testing"

func TestMethodFromStringCaseSensitive(t *testing.T) {
	if got := MethodFromString("GET"); got != MethodGet {
		t.Fatalf("GET = %v", got)
	}
	if got := MethodFromString("get"); got != MethodInvalid {
		t.Fatalf("get = %v, want MethodInvalid", got)
	}
	if got := MethodFromString(""); got != MethodInvalid {
		t.Fatalf("empty = %v", got)
	}
	if got := MethodFromBytes([]byte("M-SEARCH")); got != MethodMSearch {
		t.Fatalf("M-SEARCH = %v", got)
	}
}

func TestMethodTableRoundTrip(t *testing.T) {
	if int(MethodInvalid) != 34 {
		t.Fatalf("table size = %d, want 34", MethodInvalid)
	}
	for m := MethodDelete; m < MethodInvalid; m++ {
		if got := MethodFromString(m.String()); got != m {
			t.Fatalf("round trip %d (%s) = %d", m, m, got)
		}
	}
	if MethodDelete != 0 || MethodSource != 33 || MethodPatch != 28 {
		t.Fatal("method numbering drifted")
	}
	if MethodInvalid.String() != "<invalid>" || MethodInvalid.Valid() {
		t.Fatalf("invalid = %q", MethodInvalid.String())
	}
}

func TestStatusText(t *testing.T) {
	cases := map[int]string{
		200: "OK",
		203: "Non-Authoritative Information",
		302: "Found",
		404: "Not Found",
		431: "Request Header Fields Too Large",
		511: "Network Authentication Required",
		299: UnknownStatusText,
		999: UnknownStatusText,
	}
	for code, want := range cases {
		if got := StatusText(code); got != want {
			t.Fatalf("StatusText(%d) = %q, want %q", code, got, want)
		}
	}
	if len(statusText) != 59 {
		t.Fatalf("status table size = %d", len(statusText))
	}
	if !StatusTemporaryRedirect.IsRedirect() || StatusNotModified.IsRedirect() {
		t.Fatal("IsRedirect")
	}
	if StatusNotFound.Class() != 4 || Status(299).Known() {
		t.Fatal("Class/Known")
	}
}

func TestVersion(t *testing.T) {
	v := MakeVersion(1, 1)
	if v != Version11 || v.Major() != 1 || v.Minor() != 1 {
		t.Fatalf("MakeVersion(1,1) = %#x", uint8(v))
	}
	if uint8(v) != 0x11 {
		t.Fatalf("MakeVersion(1,1) = %#x", uint8(v))
	}
	if Version10.String() != "HTTP/1.0" {
		t.Fatalf("String = %q", Version10.String())
	}
	if got, ok := ParseVersion("HTTP/1.1"); !ok || got != Version11 {
		t.Fatalf("ParseVersion = %v, %v", got, ok)
	}
	for _, bad := range []string{"HTTP/1", "HTTP/1.x", "http/1.1", "HTTP/11.1"} {
		if _, ok := ParseVersion(bad); ok {
			t.Fatalf("ParseVersion(%q) ok", bad)
		}
	}
}
