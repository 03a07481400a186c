package objexport

import "github.com/Faultbox/bimobj/pkg/model"

// Observer receives export diagnostics. Implementations must not panic;
// nothing they do affects filtering or index offsets.
type Observer interface {
	// ElementSkipped is called for elements the filter rejects, except for
	// silent reasons.
	ElementSkipped(el *model.Element, reason SkipReason)
	// ElementRejected is called for elements with malformed geometry when
	// the exporter skips them instead of aborting.
	ElementRejected(el *model.Element, err error)
	// ElementWritten is called after an element's group is written.
	ElementWritten(el *model.Element, vertices, faces int)
}

type nopObserver struct{}

func (nopObserver) ElementSkipped(*model.Element, SkipReason) {}
func (nopObserver) ElementRejected(*model.Element, error) {}
func (nopObserver) ElementWritten(*model.Element, int, int) {}
