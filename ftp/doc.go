// Package ftp serves a filesystem.Root over anonymous, read-only FTP.
//
// The protocol itself is handled by ftpserverlib. This package only
// supplies the settings and a read-only view of the served root whose
// paths are resolved through the same os.Root handle the HTTP server uses,
// so a symlink that leaves the root cannot be read over FTP either.
package ftp
