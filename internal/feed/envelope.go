package feed

// Response is the success body of the feed function. Error is only read
// when decoding a failure body.
type Response struct {
	Properties []Listing `json:"properties"`
	CachedAt   int64     `json:"cachedAt,omitempty"`
	FreshData  bool      `json:"freshData"`
	Error      string    `json:"error,omitempty"`
}

func NewResponse(r Result) Response {
	ls := r.Listings
	if ls == nil {
		ls = []Listing{}
	}
	return Response{Properties: ls, CachedAt: r.CachedAt.UnixMilli(), FreshData: r.Fresh}
}

// ErrorBody is the failure body of the feed function.
type ErrorBody struct {
	Error      string    `json:"error"`
	Properties []Listing `json:"properties"`
}

func ErrorResponse(msg string) ErrorBody {
	return ErrorBody{Error: msg, Properties: []Listing{}}
}
