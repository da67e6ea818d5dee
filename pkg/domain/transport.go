package domain

// Transport describes how a transition tool exchanges documents with its
// invoker. It is a static property of the selected backend, decided once at
// construction and never per call.
type Transport int

const (
	// TransportStream pipes a single JSON payload over stdin and reads the
	// output envelope from stdout.
	TransportStream Transport = iota

	// TransportFilesystem materializes inputs as files in an ephemeral
	// workspace and reads result files back.
	TransportFilesystem
)

func (t Transport) String() string {
	switch t {
	case TransportStream:
		return "stream"
	case TransportFilesystem:
		return "filesystem"
	default:
		return "unknown"
	}
}
