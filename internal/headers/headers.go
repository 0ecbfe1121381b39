package headers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sort"
	"strings"
)

type entry struct {
    name  string
    value string
}

// Map is an ordered header mapping with case-insensitive keys.
// Setting an existing key replaces its value but keeps its position.
type Map struct {
    entries []entry
    index   map[string]int // lower-cased name -> position in entries
}

func New() *Map {
    return &Map{index: make(map[string]int)}
}

// FromHTTP flattens h into a Map. Keys are ordered by canonical name since
// net/http does not keep wire order; a repeated header keeps its last value.
func FromHTTP(h http.Header) *Map {
    names := make([]string, 0, len(h))
    for k := range h {
        names = append(names, k)
    }
    sort.Strings(names)

    m := New()
    for _, k := range names {
        vs := h[k]
        if len(vs) == 0 {
            continue
        }
        m.Set(k, vs[len(vs)-1])
    }
    return m
}

func (m *Map) Set(name, value string) {
    key := strings.ToLower(name)
    if i, ok := m.index[key]; ok {
        m.entries[i].value = value
        return
    }
    m.index[key] = len(m.entries)
    m.entries = append(m.entries, entry{name: name, value: value})
}

// Get returns the value for name in any case.
func (m *Map) Get(name string) (string, bool) {
    i, ok := m.index[strings.ToLower(name)]
    if !ok {
        return "", false
    }
    return m.entries[i].value, true
}

func (m *Map) Has(name string) bool {
    _, ok := m.index[strings.ToLower(name)]
    return ok
}

func (m *Map) Len() int { return len(m.entries) }

// Keys returns header names as first set, in insertion order.
func (m *Map) Keys() []string {
    keys := make([]string, len(m.entries))
    for i, e := range m.entries {
        keys[i] = e.name
    }
    return keys
}

// MarshalJSON writes the map as a JSON object in insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
    var buf bytes.Buffer
    buf.WriteByte('{')
    for i, e := range m.entries {
        if i > 0 {
            buf.WriteByte(',')
        }
        if err := writeString(&buf, e.name); err != nil {
            return nil, err
        }
        buf.WriteByte(':')
        if err := writeString(&buf, e.value); err != nil {
            return nil, err
        }
    }
    buf.WriteByte('}')
    return buf.Bytes(), nil
}

func writeString(buf *bytes.Buffer, s string) error {
    enc := json.NewEncoder(buf)
    enc.SetEscapeHTML(false)
    if err := enc.Encode(s); err != nil {
        return err
    }
    // Encode appends a newline
    buf.Truncate(buf.Len() - 1)
    return nil
}
