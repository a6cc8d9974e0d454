// Package http provides the HTTP front end for softserve.
//
// Every request, whatever its method, is resolved against the served root and
// answered with one of:
//
//   - 200 with the guessed Content-Type and the file streamed in chunks
//   - 404 text/plain "Not found: <path>" for missing files, directories
//     without an index, and paths that escape the root
//   - 500 text/plain for unexpected I/O failures
//
// # Features
//
//   - Catch-all chi router: no method or path is rejected by routing
//   - Per-request access log (status, path, bytes, duration, request id)
//   - Panic recovery scoped to the failing request
//   - Optional CORS support
//   - Cleartext HTTP/2 (h2c) alongside HTTP/1.1
//   - Accept loop that survives transient Accept failures
//
// # Usage
//
//	resolver, _ := softserve.NewResolver(root, softserve.ResolverConfig{IndexConvenience: true})
//	handler := http.NewHandler(&http.HandlerConfig{}, resolver)
//
//	server := http.NewServer(http.ServerConfig{Addr: "127.0.0.1:5001", H2C: true}, handler.Router())
//	if err := server.ListenAndServe(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// ListenAndServe returns when ctx is cancelled, after in-flight requests have
// finished or the shutdown timeout has passed.
package http
