package arrskema

import (
	"errors"
	"io"
	"strings"
	"sync"

	j "github.com/goccy/go-json"
)

// LiteralDriver decodes a textual structured-data literal into plain Go values
// ([]any, map[string]any, string, bool, nil and a numeric type). It backs the
// string-to-sequence conversion and may be swapped with SetLiteralDriver.
type LiteralDriver interface {
	ParseLiteral(text string) (any, error)
	Name() string
}

var (
	literalDriverMu      sync.RWMutex
	currentLiteralDriver LiteralDriver = defaultLiteralDriver{}
)

// SetLiteralDriver replaces the global literal driver; nil values are ignored.
func SetLiteralDriver(d LiteralDriver) {
	if d == nil {
		return
	}
	literalDriverMu.Lock()
	currentLiteralDriver = d
	literalDriverMu.Unlock()
}

// UseDefaultLiteralDriver restores the default go-json backed driver.
func UseDefaultLiteralDriver() {
	literalDriverMu.Lock()
	currentLiteralDriver = defaultLiteralDriver{}
	literalDriverMu.Unlock()
}

// CurrentLiteralDriver returns the driver in use.
func CurrentLiteralDriver() LiteralDriver {
	literalDriverMu.RLock()
	d := currentLiteralDriver
	literalDriverMu.RUnlock()
	return d
}

var errTrailingData = errors.New("arrskema: trailing data after literal")

// defaultLiteralDriver decodes JSON with goccy/go-json, keeping numbers as
// json.Number so no precision is lost before a number schema sees them.
type defaultLiteralDriver struct{}

func (defaultLiteralDriver) ParseLiteral(text string) (any, error) {
	dec := j.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errTrailingData
	}
	return v, nil
}

func (defaultLiteralDriver) Name() string { return "go-json" }

// Literal is the outcome of ParseSequenceLiteral: either a parsed sequence
// (OK) or not applicable.
type Literal struct {
	Seq []any
	OK  bool
}

// ParseSequenceLiteral decodes text with the current driver and keeps the
// result only when it is a sequence. Decoding failures are not errors here:
// text that is not a sequence literal is reported as not applicable, so the
// caller falls through with the original string.
func ParseSequenceLiteral(text string) Literal {
	v, err := CurrentLiteralDriver().ParseLiteral(text)
	if err != nil {
		return Literal{}
	}
	seq, ok := v.([]any)
	if !ok {
		return Literal{}
	}
	return Literal{Seq: seq, OK: true}
}

// ParseObjectLiteral is the map counterpart of ParseSequenceLiteral.
func ParseObjectLiteral(text string) (map[string]any, bool) {
	v, err := CurrentLiteralDriver().ParseLiteral(text)
	if err != nil {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}
