package api

import (
	"net/url"
	"strconv"
	"strings"
)

// Query is an ordered list of query parameters. Keys keep insertion order so
// the encoded string is stable; url.Values sorts by key.
type Query struct {
	keys   []string
	values []string
}

// Add appends key=value unless value is empty.
func (q *Query) Add(key, value string) *Query {
	if value == "" {
		return q
	}
	q.keys = append(q.keys, key)
	q.values = append(q.values, value)
	return q
}

// AddInt appends key=v unless v is zero.
func (q *Query) AddInt(key string, v int) *Query {
	if v == 0 {
		return q
	}
	return q.Add(key, strconv.Itoa(v))
}

// AddInt64Ptr appends key=*v unless v is nil.
func (q *Query) AddInt64Ptr(key string, v *int64) *Query {
	if v == nil {
		return q
	}
	return q.Add(key, strconv.FormatInt(*v, 10))
}

// AddBoolPtr appends key=*v unless v is nil.
func (q *Query) AddBoolPtr(key string, v *bool) *Query {
	if v == nil {
		return q
	}
	return q.Add(key, strconv.FormatBool(*v))
}

// Len is the number of parameters.
func (q *Query) Len() int {
	if q == nil {
		return 0
	}
	return len(q.keys)
}

// Encode renders the parameters in insertion order, escaped.
func (q *Query) Encode() string {
	if q.Len() == 0 {
		return ""
	}
	var b strings.Builder
	for i, k := range q.keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(q.values[i]))
	}
	return b.String()
}
