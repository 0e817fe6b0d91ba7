// Package giphy provides a client for the GIPHY media search API.
//
// The package is split in two layers:
//
//   - Client.Get: the raw API call. It builds the request URL from the base
//     URL, an endpoint path, the API key and a set of query parameters, and
//     returns every failure as an error.
//   - Fetchers: Search, Trending, Suggestions, TrendingSearches and GetByID.
//     These never fail. A transport error, a non-success status or a
//     malformed body is logged and turned into an empty response whose Err
//     method reports what went wrong.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := giphy.NewClient(
//		giphy.DefaultBaseURL,
//		"your-api-key",
//		logger,
//		giphy.WithTimeout(10*time.Second),
//		giphy.WithRateLimit(rate.Every(time.Second), 5),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	res := client.Trending(ctx, giphy.TrendingParams{Kind: giphy.KindStickers, Limit: 5})
//	for _, m := range res.Media() {
//		fmt.Println(m.Slug, m.Image)
//	}
//	if err := res.Err(); err != nil {
//		// the request failed, res.Data is empty
//	}
//
// # Cancellation
//
// Every call takes a context. The request is bound to that context and its
// resources are released when the call returns. A request is only aborted
// early when the caller cancels the context.
package giphy
