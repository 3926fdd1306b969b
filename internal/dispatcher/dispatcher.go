package dispatcher

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"tasklogger/internal/model"
	"tasklogger/internal/parser"
	"tasklogger/internal/sheets"
	"tasklogger/internal/store"
)

// UsageHint is returned for prompts without the "Update for <Name>:" prefix.
const UsageHint = "Please begin your message with a clear format like: 'Update for Siva: ...'"

var prefixRe = regexp.MustCompile(`(?i)^update for (\w+):`)

// ErrBadPrefix the prompt does not start with "Update for <Name>:"
var ErrBadPrefix = errors.New(UsageHint)

// History records dispatched updates
type History interface {
	InsertUpdateLog(rec *store.UpdateLog) error
}

// Dispatcher routes updates from either surface to the sheet logger
type Dispatcher struct {
	logger  *sheets.Logger
	history History
	log     *zap.Logger
	source  string
	analyze func(string) parser.Extraction
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithHistory records every dispatch in h.
func WithHistory(h History) Option {
	return func(d *Dispatcher) { d.history = h }
}

// WithLogger sets the zap logger.
func WithLogger(l *zap.Logger) Option {
	return func(d *Dispatcher) { d.log = l }
}

// New creates a dispatcher writing through logger.
func New(logger *sheets.Logger, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		logger:  logger,
		log:     zap.NewNop(),
		analyze: parser.Analyze,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// As returns a copy of d that records dispatches under source.
func (d *Dispatcher) As(source string) *Dispatcher {
	c := *d
	c.source = source
	return &c
}

// Logger returns the sheet logger.
func (d *Dispatcher) Logger() *sheets.Logger {
	return d.logger
}

// ParseSheetName returns the name in a leading "Update for <Name>:".
func ParseSheetName(prompt string) (string, error) {
	m := prefixRe.FindStringSubmatch(strings.TrimSpace(prompt))
	if m == nil {
		return "", ErrBadPrefix
	}
	return m[1], nil
}

// Handle logs a natural language update "Update for <Name>: ...".
// The whole prompt, prefix included, goes through the extractor.
func (d *Dispatcher) Handle(ctx context.Context, prompt string) model.Result {
	source := d.sourceOr(store.SourceNatural)

	name, err := ParseSheetName(prompt)
	if err != nil {
		d.log.Info("rejected update without prefix", zap.Int("length", len(prompt)))
		res := model.Failure(err)
		d.record(source, "", prompt, nil, res)
		return res
	}

	x := d.analyze(prompt)
	if missing := x.Missing(); len(missing) > 0 {
		d.log.Warn("fields not extracted", zap.String("sheet", name), zap.Strings("missing", missing))
	}

	res := d.appendEntry(ctx, name, x.Entry)
	d.record(source, name, prompt, x.Entry.Row(), res)
	return res
}

// LogStructured logs an already structured entry keyed by column name.
func (d *Dispatcher) LogStructured(ctx context.Context, name string, fields map[string]string) model.Result {
	entry := model.FromMap(fields)
	name = strings.TrimSpace(name)

	res := d.appendEntry(ctx, name, entry)
	d.record(d.sourceOr(store.SourceStructured), name, "", entry.Row(), res)
	return res
}

func (d *Dispatcher) appendEntry(ctx context.Context, name string, entry model.UpdateEntry) model.Result {
	report, err := d.logger.Append(ctx, name, entry)
	if err != nil {
		return model.Failure(err)
	}
	return model.Success(report)
}

func (d *Dispatcher) record(source, sheet, prompt string, row []string, res model.Result) {
	if d.history == nil {
		return
	}
	rec := &store.UpdateLog{
		SheetName: sheet,
		Source:    source,
		Prompt:    prompt,
		Row:       row,
		Status:    res.Status,
		Message:   res.Message(),
	}
	if err := d.history.InsertUpdateLog(rec); err != nil {
		d.log.Error("record update history failed", zap.String("sheet", sheet), zap.Error(err))
	}
}

func (d *Dispatcher) sourceOr(def string) string {
	if d.source != "" {
		return d.source
	}
	return def
}
