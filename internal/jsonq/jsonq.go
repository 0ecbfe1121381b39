package jsonq

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

var (
    ErrEmptyQuery  = errors.New("query path must not be empty")
    ErrDoubleDot   = errors.New("query path must not contain consecutive dots")
    ErrInvalidPart = errors.New("invalid query path part")
)

// ValidateQuery checks a dot path such as "users.0.name". Each part is an
// array index or a key of letters, digits, '_' and '-'.
func ValidateQuery(path string) error {
    if path == "" {
        return ErrEmptyQuery
    }
    if strings.Contains(path, "..") {
        return ErrDoubleDot
    }
    for _, part := range strings.Split(path, ".") {
        if _, err := strconv.ParseUint(part, 10, 64); err == nil {
            continue
        }
        if !validKey(part) {
            return errors.Wrapf(ErrInvalidPart, "%q", part)
        }
    }
    return nil
}

func validKey(key string) bool {
    if key == "" {
        return false
    }
    for _, c := range key {
        if !unicode.IsLetter(c) && !unicode.IsNumber(c) && c != '_' && c != '-' {
            return false
        }
    }
    return true
}

// Decode reads one JSON document from r. Numbers stay json.Number so they
// print back unchanged.
func Decode(r io.Reader) (any, error) {
    dec := json.NewDecoder(r)
    dec.UseNumber()
    var v any
    if err := dec.Decode(&v); err != nil {
        return nil, errors.Wrap(err, "decode json")
    }
    return v, nil
}

// Query walks v along a dot path. Objects are indexed by key, arrays by
// position.
func Query(v any, path string) (any, error) {
    cur := v
    for _, part := range strings.Split(path, ".") {
        switch node := cur.(type) {
        case map[string]any:
            next, ok := node[part]
            if !ok {
                return nil, errors.Errorf("key %q not found", part)
            }
            cur = next
        case []any:
            i, err := strconv.ParseUint(part, 10, 64)
            if err != nil {
                return nil, errors.Errorf("invalid array index %q", part)
            }
            if i >= uint64(len(node)) {
                return nil, errors.Errorf("array index %d out of range", i)
            }
            cur = node[i]
        default:
            return nil, errors.Errorf("cannot access %q on a non-object, non-array value", part)
        }
    }
    return cur, nil
}

// Format renders v indented by two spaces, or on one line when compact.
func Format(v any, compact bool) ([]byte, error) {
    var buf bytes.Buffer
    enc := json.NewEncoder(&buf)
    enc.SetEscapeHTML(false)
    if !compact {
        enc.SetIndent("", "  ")
    }
    if err := enc.Encode(v); err != nil {
        return nil, errors.Wrap(err, "encode json")
    }
    return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
