package softserve

import "fmt"

// IndexFile is served in place of a directory when index convenience is on.
const IndexFile = "index.html"

// ChunkSize bounds the read buffer of a Stream.
const ChunkSize = 16 * 1024

type OutcomeKind int

const (
	OutcomeNotFound OutcomeKind = iota
	OutcomeStream
	OutcomeServerError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeNotFound:
		return "not_found"
	case OutcomeStream:
		return "stream"
	case OutcomeServerError:
		return "server_error"
	default:
		return fmt.Sprintf("outcome(%d)", int(k))
	}
}

// Outcome is the result of resolving a single request path.
// Stream, ContentType, Path and Size are only set for OutcomeStream.
type Outcome struct {
	Kind        OutcomeKind
	ContentType string
	Stream      *Stream
	Path        string
	Size        int64
}

type ResolverConfig struct {
	// IndexConvenience serves <dir>/index.html when a directory is requested.
	IndexConvenience bool
}

type Protocol string

const (
	ProtocolHTTP Protocol = "http"
	ProtocolFTP  Protocol = "ftp"
	ProtocolTFTP Protocol = "tftp"
)

func (p Protocol) IsValid() bool {
	switch p {
	case ProtocolHTTP, ProtocolFTP, ProtocolTFTP:
		return true
	default:
		return false
	}
}

func ParseProtocol(s string) (Protocol, error) {
	p := Protocol(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid protocol: %s (valid protocols: http, ftp, tftp)", s)
	}
	return p, nil
}
