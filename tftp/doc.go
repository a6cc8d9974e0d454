// Package tftp serves a filesystem.Root over read-only TFTP.
//
// Requested filenames go through the same Resolver the HTTP server uses,
// with index convenience off, so the containment rules are identical.
// Write requests are refused.
package tftp
