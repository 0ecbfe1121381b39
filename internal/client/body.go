package client

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// KvPair is one key=value form field.
type KvPair struct {
    Key   string
    Value string
}

// ParseKvPair parses "key=value". The value may itself contain '='.
func ParseKvPair(s string) (KvPair, error) {
    k, v, ok := strings.Cut(s, "=")
    if !ok || k == "" {
        return KvPair{}, errors.Errorf("invalid form pair %q, want key=value", s)
    }
    return KvPair{Key: k, Value: v}, nil
}

type BodyKind int

const (
    KindJSON BodyKind = iota
    KindForm
    KindRaw
)

// Body is a request payload together with the content type it is sent as.
type Body struct {
    Kind BodyKind
    Data string
    Form []KvPair
}

func JSONBody(s string) (*Body, error) {
    if !json.Valid([]byte(s)) {
        return nil, errors.Errorf("invalid JSON body %q", s)
    }
    return &Body{Kind: KindJSON, Data: s}, nil
}

func FormBody(pairs []KvPair) *Body {
    return &Body{Kind: KindForm, Form: pairs}
}

func RawBody(s string) *Body {
    return &Body{Kind: KindRaw, Data: s}
}

func (b *Body) ContentType() string {
    switch b.Kind {
    case KindJSON:
        return "application/json"
    case KindForm:
        return "application/x-www-form-urlencoded"
    default:
        return "text/plain"
    }
}

// String renders the payload as sent on the wire. Form pairs keep the order
// they were given in.
func (b *Body) String() string {
    if b.Kind != KindForm {
        return b.Data
    }
    parts := make([]string, len(b.Form))
    for i, p := range b.Form {
        parts[i] = url.QueryEscape(p.Key) + "=" + url.QueryEscape(p.Value)
    }
    return strings.Join(parts, "&")
}

// ValidateURL accepts absolute http and https URLs only.
func ValidateURL(raw string) (string, error) {
    u, err := url.Parse(raw)
    if err != nil {
        return "", errors.Wrap(err, "parse url")
    }
    if u.Scheme != "http" && u.Scheme != "https" {
        return "", errors.Errorf("url %q must use http or https", raw)
    }
    if u.Host == "" {
        return "", errors.Errorf("url %q has no host", raw)
    }
    return u.String(), nil
}
