package parser

import (
	"fjacquet/broker-qif/internal/logging"
)

// BaseParser carries what every broker parser shares: its name and a logger
// tagged with that name. Broker parsers embed it.
type BaseParser struct {
	name   string
	logger logging.Logger
}

// NewBaseParser returns a BaseParser named name. A nil logger means the default
// logrus logger.
func NewBaseParser(name string, logger logging.Logger) BaseParser {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", logging.FormatText)
	}
	return BaseParser{
		name:   name,
		logger: logger.WithField(logging.FieldParser, name),
	}
}

// Name is the profile name of the parser ("schwab", "sofi").
func (b *BaseParser) Name() string {
	return b.name
}

// GetLogger returns the parser's logger.
func (b *BaseParser) GetLogger() logging.Logger {
	return b.logger
}

// Notice reports a row that was skipped or degraded and has to be checked by
// hand. It does not stop the conversion.
func (b *BaseParser) Notice(reason string, fields ...logging.Field) {
	all := append([]logging.Field{logging.F(logging.FieldReason, reason)}, fields...)
	b.logger.Warn("Row needs manual review", all...)
}

// Done logs the outcome of a parse and returns res unchanged.
func (b *BaseParser) Done(res Result) Result {
	b.logger.Info("Parsed export",
		logging.F(logging.FieldCount, len(res.Actions)),
		logging.F(logging.FieldRows, res.Rows),
		logging.F(logging.FieldNotices, res.Notices))
	return res
}
