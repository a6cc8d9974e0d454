package softserve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"
)

// File is an opened filesystem entry.
type File interface {
	io.ReadCloser
	Stat() (fs.FileInfo, error)
}

// FileSystem defines the filesystem operations the Resolver needs.
// Implementations confine every operation to a single served root.
//
// All methods accept a context for cancellation.
type FileSystem interface {
	// Resolve joins name onto the served root and canonicalizes the result,
	// following ".", ".." and symlinks against the real filesystem.
	//
	// Parameters:
	//   - ctx: Context for cancellation
	//   - name: Root-relative, slash-separated path; joined textually, never cleaned first
	//
	// Returns:
	//   - string: The canonical absolute path, guaranteed to be the root or below it
	//   - error: ErrOutsideRoot if the canonical path escapes the root,
	//     ErrNotFound if a component is missing or has the wrong type,
	//     ErrInternal for any other I/O failure
	Resolve(ctx context.Context, name string) (string, error)

	// Open opens a canonical path previously returned by Resolve (or a child
	// of one) for reading.
	//
	// Parameters:
	//   - ctx: Context for cancellation
	//   - path: Absolute path below the root
	//
	// Returns:
	//   - File: The opened entry; the caller must close it
	//   - error: ErrOutsideRoot, ErrNotFound, or ErrInternal
	Open(ctx context.Context, path string) (File, error)
}

// Resolver maps request paths to outcomes. It holds no per-request state
// and is safe for concurrent use.
type Resolver struct {
	fsys             FileSystem
	indexConvenience bool
}

func NewResolver(fsys FileSystem, cfg ResolverConfig) (*Resolver, error) {
	if fsys == nil {
		return nil, errors.New("new resolver: file system is nil")
	}
	return &Resolver{
		fsys:             fsys,
		indexConvenience: cfg.IndexConvenience,
	}, nil
}

// Resolve turns requestPath into an outcome. A non-nil error is only
// returned with OutcomeServerError; every client-caused failure, including
// attempts to leave the root, is OutcomeNotFound with a nil error.
func (r *Resolver) Resolve(ctx context.Context, requestPath string) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return serverError(requestPath, err)
	}

	name, err := TrimRequestPath(requestPath)
	if err != nil {
		slog.Debug("malformed request path", "path", requestPath, "err", err)
		return notFound(), nil
	}

	resolved, err := r.fsys.Resolve(ctx, name)
	if err != nil {
		switch {
		case errors.Is(err, ErrOutsideRoot):
			slog.Warn("request path escapes served root", "path", requestPath)
			return notFound(), nil
		case errors.Is(err, ErrNotFound):
			return notFound(), nil
		default:
			return serverError(requestPath, err)
		}
	}

	slog.Debug("resolved request path", "path", requestPath, "resolved", resolved)

	f, err := r.fsys.Open(ctx, resolved)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrOutsideRoot) {
			return notFound(), nil
		}
		return serverError(requestPath, err)
	}

	info, err := f.Stat()
	if err != nil {
		closeFile(f, resolved)
		return serverError(requestPath, err)
	}

	switch {
	case info.Mode().IsRegular():
		// "file/" names a directory that does not exist.
		if strings.HasSuffix(name, "/") {
			closeFile(f, resolved)
			return notFound(), nil
		}
	case info.IsDir():
		closeFile(f, resolved)
		if !r.indexConvenience {
			return notFound(), nil
		}

		var index string
		index, err = r.fsys.Resolve(ctx, indexName(name))
		if err != nil {
			if errors.Is(err, ErrNotFound) || errors.Is(err, ErrOutsideRoot) {
				slog.Debug("directory has no index", "path", requestPath, "err", err)
				return notFound(), nil
			}
			return serverError(requestPath, err)
		}

		f, err = r.fsys.Open(ctx, index)
		if err != nil {
			if errors.Is(err, ErrNotFound) || errors.Is(err, ErrOutsideRoot) {
				slog.Debug("directory has no index", "path", requestPath, "err", err)
				return notFound(), nil
			}
			return serverError(requestPath, err)
		}

		info, err = f.Stat()
		if err != nil {
			closeFile(f, index)
			return serverError(requestPath, err)
		}
		if !info.Mode().IsRegular() {
			closeFile(f, index)
			return notFound(), nil
		}

		resolved = index
		slog.Debug("remapped directory to index", "path", requestPath, "resolved", resolved)
	default:
		closeFile(f, resolved)
		return notFound(), nil
	}

	return Outcome{
		Kind:        OutcomeStream,
		ContentType: ContentType(resolved),
		Stream:      NewStream(ctx, f),
		Path:        resolved,
		Size:        info.Size(),
	}, nil
}

// indexName appends IndexFile to the trimmed request path of a directory.
func indexName(name string) string {
	name = strings.TrimSuffix(name, "/")
	if name == "" {
		return IndexFile
	}
	return name + "/" + IndexFile
}

func notFound() Outcome {
	return Outcome{Kind: OutcomeNotFound}
}

func serverError(requestPath string, err error) (Outcome, error) {
	return Outcome{Kind: OutcomeServerError}, fmt.Errorf("resolve %s: %w", requestPath, err)
}

func closeFile(f File, path string) {
	if err := f.Close(); err != nil {
		slog.Warn("failed to close file", "path", path, "err", err)
	}
}
