package httpx

import "strconv"

// Version is an HTTP protocol version packed into one byte: the high nibble
// is the major version and the low nibble the minor version.
type Version uint8

const (
	Version10 Version = 0x10
	Version11 Version = 0x11
)

// MakeVersion packs major and minor into a Version. Values above 15 are
// truncated to their low nibble.
func MakeVersion(major, minor int) Version {
	return Version((major&0x0f)<<4 | minor&0x0f)
}

func (v Version) Major() int { return int(v >> 4) }
func (v Version) Minor() int { return int(v & 0x0f) }

// String renders v as it appears on the wire, e.g. "HTTP/1.1".
func (v Version) String() string {
	return "HTTP/" + strconv.Itoa(v.Major()) + "." + strconv.Itoa(v.Minor())
}

// ParseVersion parses "HTTP/<major>.<minor>" with single-digit components.
func ParseVersion(s string) (Version, bool) {
	if len(s) != 8 || s[:5] != "HTTP/" || s[6] != '.' {
		return 0, false
	}
	major, minor := s[5], s[7]
	if major < '0' || major > '9' || minor < '0' || minor > '9' {
		return 0, false
	}
	return MakeVersion(int(major-'0'), int(minor-'0')), true
}
