package management

import (
	"net/url"
	"strconv"
)

// RequestOption configures a single Management API request, typically list
// paging and filtering.
type RequestOption func(*requestOptions)

type requestOptions struct {
	params url.Values
}

func getRequestOpts(opt ...RequestOption) requestOptions {
	opts := requestOptions{params: url.Values{}}
	for _, o := range opt {
		if o != nil {
			o(&opts)
		}
	}
	return opts
}

// Page requests a specific result page (zero-based).
func Page(page int) RequestOption {
	return Parameter("page", strconv.Itoa(page))
}

// PerPage requests a specific page size.
func PerPage(n int) RequestOption {
	return Parameter("per_page", strconv.Itoa(n))
}

// IncludeTotals asks the API to include paging totals in list responses.
func IncludeTotals(include bool) RequestOption {
	return Parameter("include_totals", strconv.FormatBool(include))
}

// Query filters a list request with the API's search syntax.
func Query(q string) RequestOption {
	return Parameter("q", q)
}

// Parameter sets an arbitrary query string parameter on the request.
func Parameter(key, value string) RequestOption {
	return func(o *requestOptions) {
		o.params.Set(key, value)
	}
}
