// Package httpclient is the HTTP transport under the user fetch client.
//
// It resolves request paths against a base URL, sends requests with the
// caller's context so that canceling the context aborts the request in
// flight, and classifies failures into typed errors (timeout, canceled,
// connection, not found, server, ...). An optional shared rate limiter
// paces requests.
//
//	client, err := httpclient.New(httpclient.Config{BaseURL: "http://localhost:8081"})
//	resp, err := client.Do(ctx, httpclient.Request{Method: http.MethodGet, Path: "/users/3"})
package httpclient
