package logger

import (
	"go.uber.org/zap"

	"github.com/Faultbox/bimobj/pkg/model"
	"github.com/Faultbox/bimobj/pkg/objexport"
)

// ExportObserver reports exporter diagnostics to a zap logger.
type ExportObserver struct {
	log *zap.Logger
}

// NewExportObserver returns an observer writing to log.
func NewExportObserver(log *zap.Logger) *ExportObserver {
	return &ExportObserver{log: log}
}

func elementFields(el *model.Element) []zap.Field {
	if el == nil {
		return []zap.Field{zap.Skip()}
	}
	return []zap.Field{
		zap.String("type", el.Type),
		zap.String("guid", el.GlobalID),
		zap.String("name", el.Name),
	}
}

// ElementSkipped logs filter rejections at debug level.
func (o *ExportObserver) ElementSkipped(el *model.Element, reason objexport.SkipReason) {
	o.log.Debug("element skipped", append(elementFields(el), zap.Stringer("reason", reason))...)
}

// ElementRejected logs malformed geometry as a warning.
func (o *ExportObserver) ElementRejected(el *model.Element, err error) {
	o.log.Warn("element rejected", append(elementFields(el), zap.Error(err))...)
}

// ElementWritten logs each written group at debug level.
func (o *ExportObserver) ElementWritten(el *model.Element, vertices, faces int) {
	o.log.Debug("element written", append(elementFields(el),
		zap.Int("vertices", vertices),
		zap.Int("faces", faces),
	)...)
}

var _ objexport.Observer = (*ExportObserver)(nil)
