package processor

import "fmt"

// NotFoundError reports a source path that does not resolve to an
// existing file.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

// SchemaError reports a column the source table is missing. Requesting a
// year outside the export's range raises this instead of silently
// clipping the range.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("column %q not found in source", e.Column)
}
