// Package softserve serves a local directory tree read-only over the network.
//
// The core of the package is the Resolver, which turns an untrusted request
// path into either a stream of a file's contents or a "not found" outcome,
// and never reads anything outside the served root.
//
// # Key Components
//
//   - Resolver: maps request paths to outcomes (stream, not found, server error)
//   - FileSystem: interface for canonicalizing and opening paths under a root
//   - Stream: lazy, chunked, single-use reader over an opened file
//
// # Outcomes
//
// Resolve returns one of three outcomes:
//
//   - OutcomeStream: a regular file (or a directory's index.html) was found
//   - OutcomeNotFound: missing files, traversal attempts, non-regular files
//   - OutcomeServerError: unexpected I/O failures, returned together with an error
//
// A path that escapes the served root produces the same OutcomeNotFound as a
// missing file, so clients cannot tell the two apart.
//
// # Example Usage
//
//	root, err := filesystem.NewRoot("/srv/www")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer root.Close()
//
//	resolver, err := softserve.NewResolver(root, softserve.ResolverConfig{IndexConvenience: true})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out, err := resolver.Resolve(ctx, "/a.txt")
//	if err != nil {
//	    // server error
//	}
//	if out.Kind == softserve.OutcomeStream {
//	    defer out.Stream.Close()
//	    _, _ = out.Stream.WriteTo(w)
//	}
//
// See the http package for the HTTP front end and the ftp and tftp packages
// for the alternate protocol servers.
package softserve
