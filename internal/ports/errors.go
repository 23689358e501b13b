package ports

import "fmt"

var (
	ErrNotFound        = errString("document not found")
	ErrUnknownResource = errString("unknown resource")
	ErrLoading         = errString("loading")
)

type errString string

func (e errString) Error() string { return string(e) }

// SourceError reports a feed document whose last load failed. Message is the
// fetch failure verbatim.
type SourceError struct {
	Resource Resource
	Message  string
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Resource, e.Message)
}
