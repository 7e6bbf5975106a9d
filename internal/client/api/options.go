package api

type callOptions struct {
	keepSessionOn401 bool
	anonymous        bool
	query            *Query
}

// CallOption tunes a single request.
type CallOption func(*callOptions)

// KeepSessionOn401 reports a 401 as the endpoint being unavailable instead of
// expiring the session. Only the preferences calls use it; every other
// endpoint treats 401 as an expired session.
func KeepSessionOn401() CallOption {
	return func(o *callOptions) { o.keepSessionOn401 = true }
}

// Anonymous sends the request without a bearer token and returns the server's
// own message on 401. Used by login and register, where 401 means bad
// credentials.
func Anonymous() CallOption {
	return func(o *callOptions) { o.anonymous = true }
}

// WithQuery attaches query parameters.
func WithQuery(q *Query) CallOption {
	return func(o *callOptions) { o.query = q }
}

func collect(opts []CallOption) callOptions {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
