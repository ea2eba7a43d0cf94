package httpx

import (
    "slices"
    "strings"
)

// StringMap maps string keys to string values. Keys compare equal under
// ASCII case folding, so "Content-Type" and "content-type" name the same
// entry. Entries are kept in case-insensitive sort order; serialization
// relies on this to emit headers deterministically.
//
// The zero value is an empty map ready to use. A StringMap is not safe for
// concurrent use.
type StringMap struct {
    entries []entry
}

type entry struct {
    key   string
    value string
}

// CompareFold compares a and b byte by byte after folding ASCII letters to
// lower case. Bytes outside A-Z are compared as is.
func CompareFold(a, b string) int {
    n := min(len(a), len(b))
    for i := 0; i < n; i++ {
        ca, cb := lower(a[i]), lower(b[i])
        if ca != cb {
            if ca < cb {
                return -1
            }
            return 1
        }
    }
    switch {
    case len(a) < len(b):
        return -1
    case len(a) > len(b):
        return 1
    }
    return 0
}

// CaseInsensitiveLess reports whether a sorts before b under ASCII case folding.
func CaseInsensitiveLess(a, b string) bool { return CompareFold(a, b) < 0 }

// EqualFold reports whether a and b are equal under ASCII case folding.
// Unlike strings.EqualFold it performs no Unicode folding.
func EqualFold(a, b string) bool {
    return len(a) == len(b) && CompareFold(a, b) == 0
}

func lower(c byte) byte {
    if c >= 'A' && c <= 'Z' {
        return c + ('a' - 'A')
    }
    return c
}

func (m *StringMap) find(key string) (int, bool) {
    return slices.BinarySearchFunc(m.entries, key, func(e entry, k string) int {
        return CompareFold(e.key, k)
    })
}

// Get returns the value stored under key and whether it was present.
func (m *StringMap) Get(key string) (string, bool) {
    if m == nil {
        return "", false
    }
    if i, ok := m.find(key); ok {
        return m.entries[i].value, true
    }
    return "", false
}

// Value returns the value stored under key, or def if key is absent.
func (m *StringMap) Value(key, def string) string {
    if v, ok := m.Get(key); ok {
        return v
    }
    return def
}

// Has reports whether key is present.
func (m *StringMap) Has(key string) bool {
    _, ok := m.Get(key)
    return ok
}

// Set stores value under key. If an entry already exists under a case
// variant of key its value is replaced and its original spelling kept.
func (m *StringMap) Set(key, value string) {
    i, ok := m.find(key)
    if ok {
        m.entries[i].value = value
        return
    }
    m.entries = slices.Insert(m.entries, i, entry{key: key, value: value})
}

// Del removes key. It is a no-op if key is absent.
func (m *StringMap) Del(key string) {
    if m == nil {
        return
    }
    if i, ok := m.find(key); ok {
        m.entries = slices.Delete(m.entries, i, i+1)
    }
}

// Len returns the number of entries.
func (m *StringMap) Len() int {
    if m == nil {
        return 0
    }
    return len(m.entries)
}

// Each calls fn for every entry in case-insensitive key order until fn
// returns false.
func (m *StringMap) Each(fn func(key, value string) bool) {
    if m == nil {
        return
    }
    for _, e := range m.entries {
        if !fn(e.key, e.value) {
            return
        }
    }
}

// Keys returns the keys in iteration order.
func (m *StringMap) Keys() []string {
    keys := make([]string, 0, m.Len())
    m.Each(func(k, _ string) bool {
        keys = append(keys, k)
        return true
    })
    return keys
}

// Clone returns an independent copy of m.
func (m *StringMap) Clone() *StringMap {
    if m == nil {
        return &StringMap{}
    }
    return &StringMap{entries: slices.Clone(m.entries)}
}

// Reset removes all entries.
func (m *StringMap) Reset() {
    m.entries = m.entries[:0]
}

// String renders the map as "{k1: v1, k2: v2}" for debugging.
func (m *StringMap) String() string {
    var sb strings.Builder
    sb.WriteByte('{')
    m.Each(func(k, v string) bool {
        if sb.Len() > 1 {
            sb.WriteString(", ")
        }
        sb.WriteString(k)
        sb.WriteString(": ")
        sb.WriteString(v)
        return true
    })
    sb.WriteByte('}')
    return sb.String()
}
