package fetcher

// HTTP boundary

// FetchParam carries the URL as the caller supplied it. Malformed
// URLs are rejected here at the HTTP boundary, not upstream.
type FetchParam struct {
	fetchUrl  string
	cookie    string
	userAgent string
}

func NewFetchParam(fetchUrl string, cookie string, userAgent string) FetchParam {
	return FetchParam{
		fetchUrl:  fetchUrl,
		cookie:    cookie,
		userAgent: userAgent,
	}
}

type FetchResult struct {
	url  string
	body []byte
	meta ResponseMeta
}

func (f *FetchResult) URL() string {
	return f.url
}

func (f *FetchResult) Body() []byte {
	return f.body
}

func (f *FetchResult) Code() int {
	return f.meta.statusCode
}

func (f *FetchResult) SizeByte() uint64 {
	return f.meta.transferredSizeByte
}

type ResponseMeta struct {
	statusCode          int
	transferredSizeByte uint64
}

// NewFetchResultForTest creates a FetchResult for testing purposes.
// This allows test packages to construct FetchResult values without
// accessing unexported fields directly.
func NewFetchResultForTest(
	url string,
	body []byte,
	statusCode int,
) FetchResult {
	return FetchResult{
		url:  url,
		body: body,
		meta: ResponseMeta{
			statusCode:          statusCode,
			transferredSizeByte: uint64(len(body)),
		},
	}
}
