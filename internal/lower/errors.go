package lower

import (
	"errors"
	"fmt"

	"github.com/ccu1tn/onnc/internal/source"
)

// UnsupportedError reports a source node no registered lower could
// materialize: either nothing matched its kind, or every matching candidate
// declined. Recoverable at the caller's discretion; carries the node's kind
// and position for precise user-facing messages.
type UnsupportedError struct {
	Kind string
	Pos  source.Position
}

func (e *UnsupportedError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: unsupported operator %q", e.Pos, e.Kind)
	}
	return fmt.Sprintf("unsupported operator %q", e.Kind)
}

// IsUnsupported reports whether err is (or wraps) an UnsupportedError.
func IsUnsupported(err error) bool {
	var ue *UnsupportedError
	return errors.As(err, &ue)
}

// AmbiguousError reports two lowers tied for the highest match score on the
// same node. Ties are a registration-time configuration error; they are
// surfaced eagerly instead of being resolved by registration order.
type AmbiguousError struct {
	Kind   string
	Score  int
	First  string
	Second string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous lowering for %q: %s and %s both score %d",
		e.Kind, e.First, e.Second, e.Score)
}

// IsAmbiguous reports whether err is (or wraps) an AmbiguousError.
func IsAmbiguous(err error) bool {
	var ae *AmbiguousError
	return errors.As(err, &ae)
}
