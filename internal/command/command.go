package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/gridstorm/internal/backend"
)

// Command errors.
var (
	// ErrUnknownOperation indicates an operation type outside the closed
	// command set. Only external, unversioned input can produce it.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrInvalidCommand indicates a command that fails validation.
	ErrInvalidCommand = errors.New("invalid command")
)

// Kind identifies one operation in the closed command set.
type Kind uint8

const (
	// KindSetValue writes a values grid to a region.
	KindSetValue Kind = iota
	// KindSetFormula writes a formulas grid to a region.
	KindSetFormula
	// KindSetFormat applies partial formatting to a region.
	KindSetFormat
	// KindInsertRows inserts a row strip, shifting down.
	KindInsertRows
	// KindInsertColumns inserts a column strip, shifting right.
	KindInsertColumns
	// KindDeleteRows deletes a row strip, shifting up.
	KindDeleteRows
	// KindDeleteColumns deletes a column strip, shifting left.
	KindDeleteColumns
	// KindCreateSheet creates and activates a worksheet.
	KindCreateSheet
	// KindCreateTable converts a region into a structured table.
	KindCreateTable
	// KindCreateChart creates a chart from a source region.
	KindCreateChart
	// KindBatchUpdate runs sub-commands sequentially, best effort.
	KindBatchUpdate
)

// kindNames are the wire names used at the JSON boundary.
var kindNames = map[Kind]string{
	KindSetValue:      "setValue",
	KindSetFormula:    "setFormula",
	KindSetFormat:     "setFormat",
	KindInsertRows:    "insertRows",
	KindInsertColumns: "insertColumns",
	KindDeleteRows:    "deleteRows",
	KindDeleteColumns: "deleteColumns",
	KindCreateSheet:   "createSheet",
	KindCreateTable:   "createTable",
	KindCreateChart:   "createChart",
	KindBatchUpdate:   "batchUpdate",
}

// String returns the wire name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind parses a wire name into a Kind.
func ParseKind(name string) (Kind, error) {
	for kind, n := range kindNames {
		if n == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
}

// Target addresses an operation's region. An empty Sheet resolves to the
// sheet active at execution time; that convenience is safe for operation
// targets because resolution happens once, inside the mutation's own
// transaction. Snapshot regions use backend.RegionRef, which requires an
// explicit sheet.
type Target struct {
	Sheet   string
	Address string
}

// Validate checks that the target address parses.
func (t Target) Validate() error {
	if t.Address == "" {
		return fmt.Errorf("%w: empty target address", ErrInvalidCommand)
	}
	if _, err := backend.ParseAddress(t.Address); err != nil {
		return err
	}
	return nil
}

// String renders the target, with the sheet when named.
func (t Target) String() string {
	if t.Sheet == "" {
		return t.Address
	}
	return t.Sheet + "!" + t.Address
}

// ParseTarget parses "Sheet1!A1:B2" or a bare "A1:B2".
func ParseTarget(s string) Target {
	if i := strings.LastIndex(s, "!"); i >= 0 {
		return Target{Sheet: s[:i], Address: s[i+1:]}
	}
	return Target{Address: s}
}

// Params is one operation's payload. The implementations in this package
// form the closed command set.
type Params interface {
	// Kind returns the operation kind.
	Kind() Kind
	// Validate checks the payload.
	Validate() error

	sealed()
}

// SetValue writes a values grid to a region.
type SetValue struct {
	Target Target
	Values backend.Grid
}

func (SetValue) Kind() Kind { return KindSetValue }
func (SetValue) sealed()    {}

func (p SetValue) Validate() error {
	if err := p.Target.Validate(); err != nil {
		return err
	}
	return validateGridShape(len(p.Values), func(i int) int { return len(p.Values[i]) })
}

// SetFormula writes a formulas grid to a region.
type SetFormula struct {
	Target   Target
	Formulas [][]string
}

func (SetFormula) Kind() Kind { return KindSetFormula }
func (SetFormula) sealed()    {}

func (p SetFormula) Validate() error {
	if err := p.Target.Validate(); err != nil {
		return err
	}
	return validateGridShape(len(p.Formulas), func(i int) int { return len(p.Formulas[i]) })
}

// SetFormat applies a partial format to a region. Absent fields are left
// untouched on the target.
type SetFormat struct {
	Target Target
	Format backend.FormatSpec
}

func (SetFormat) Kind() Kind { return KindSetFormat }
func (SetFormat) sealed()    {}

func (p SetFormat) Validate() error {
	if err := p.Target.Validate(); err != nil {
		return err
	}
	if p.Format.IsZero() {
		return fmt.Errorf("%w: empty format", ErrInvalidCommand)
	}
	return nil
}

// InsertRows inserts Count rows at the zero-based Row, shifting down.
type InsertRows struct {
	Sheet string
	Row   int
	Count int
}

func (InsertRows) Kind() Kind { return KindInsertRows }
func (InsertRows) sealed()    {}

func (p InsertRows) Validate() error { return validateStrip("row", p.Row, p.Count) }

// InsertColumns inserts Count columns at the zero-based Column, shifting
// right.
type InsertColumns struct {
	Sheet  string
	Column int
	Count  int
}

func (InsertColumns) Kind() Kind { return KindInsertColumns }
func (InsertColumns) sealed()    {}

func (p InsertColumns) Validate() error { return validateStrip("column", p.Column, p.Count) }

// DeleteRows deletes Count rows at the zero-based Row, shifting up.
type DeleteRows struct {
	Sheet string
	Row   int
	Count int
}

func (DeleteRows) Kind() Kind { return KindDeleteRows }
func (DeleteRows) sealed()    {}

func (p DeleteRows) Validate() error { return validateStrip("row", p.Row, p.Count) }

// DeleteColumns deletes Count columns at the zero-based Column, shifting
// left.
type DeleteColumns struct {
	Sheet  string
	Column int
	Count  int
}

func (DeleteColumns) Kind() Kind { return KindDeleteColumns }
func (DeleteColumns) sealed()    {}

func (p DeleteColumns) Validate() error { return validateStrip("column", p.Column, p.Count) }

// CreateSheet creates a worksheet and activates it. An empty Name lets the
// backend assign one; Position < 0 appends at the end.
type CreateSheet struct {
	Name     string
	Position int
}

func (CreateSheet) Kind() Kind { return KindCreateSheet }
func (CreateSheet) sealed()    {}

func (p CreateSheet) Validate() error { return nil }

// CreateTable converts a region into a structured table. The backend may
// assign a name different from the requested one.
type CreateTable struct {
	Target     Target
	Name       string
	Style      string
	HasHeaders bool
}

func (CreateTable) Kind() Kind { return KindCreateTable }
func (CreateTable) sealed()    {}

func (p CreateTable) Validate() error { return p.Target.Validate() }

// CreateChart creates a chart from a source region.
type CreateChart struct {
	Sheet     string
	Source    string
	ChartType string
	Name      string
	Geometry  *backend.ChartGeometry
}

func (CreateChart) Kind() Kind { return KindCreateChart }
func (CreateChart) sealed()    {}

func (p CreateChart) Validate() error {
	if p.Source == "" {
		return fmt.Errorf("%w: chart requires a source range", ErrInvalidCommand)
	}
	if _, err := backend.ParseAddress(p.Source); err != nil {
		return err
	}
	return nil
}

// BatchUpdate runs sub-commands sequentially as one caller-visible step.
// Execution is best-effort sequential, not atomic: it stops at the first
// failing sub-command and does not revert the completed ones.
type BatchUpdate struct {
	Updates []Command
}

func (BatchUpdate) Kind() Kind { return KindBatchUpdate }
func (BatchUpdate) sealed()    {}

func (p BatchUpdate) Validate() error {
	if len(p.Updates) == 0 {
		return fmt.Errorf("%w: empty batch", ErrInvalidCommand)
	}
	for i, sub := range p.Updates {
		if err := sub.Validate(); err != nil {
			return fmt.Errorf("batch step %d: %w", i, err)
		}
	}
	return nil
}

// Command is one structured mutation request. AffectedRanges must be a
// superset of the operation's real read/write footprint; regions outside
// it are invisible to undo.
type Command struct {
	Params         Params
	AffectedRanges []backend.RegionRef
	Description    string
}

// Kind returns the operation kind. A nil-params command reports an
// out-of-set kind; it fails Validate before reaching dispatch.
func (c Command) Kind() Kind {
	if c.Params == nil {
		return Kind(255)
	}
	return c.Params.Kind()
}

// Validate checks the payload and every affected range. Affected ranges
// require an explicit sheet name so snapshot capture and restore resolve
// to the same region.
func (c Command) Validate() error {
	if c.Params == nil {
		return fmt.Errorf("%w: nil params", ErrInvalidCommand)
	}
	if err := c.Params.Validate(); err != nil {
		return err
	}
	for _, ref := range c.AffectedRanges {
		if err := ref.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Describe returns the caller-supplied description, or a generated one.
func (c Command) Describe() string {
	if c.Description != "" {
		return c.Description
	}
	switch p := c.Params.(type) {
	case SetValue:
		return "Set values on " + p.Target.String()
	case SetFormula:
		return "Set formulas on " + p.Target.String()
	case SetFormat:
		return "Format " + p.Target.String()
	case InsertRows:
		return fmt.Sprintf("Insert %d row(s) at %d", p.Count, p.Row+1)
	case InsertColumns:
		return fmt.Sprintf("Insert %d column(s) at %s", p.Count, backend.ColumnName(p.Column))
	case DeleteRows:
		return fmt.Sprintf("Delete %d row(s) at %d", p.Count, p.Row+1)
	case DeleteColumns:
		return fmt.Sprintf("Delete %d column(s) at %s", p.Count, backend.ColumnName(p.Column))
	case CreateSheet:
		if p.Name != "" {
			return "Create sheet " + p.Name
		}
		return "Create sheet"
	case CreateTable:
		return "Create table over " + p.Target.String()
	case CreateChart:
		return "Create chart from " + p.Source
	case BatchUpdate:
		return fmt.Sprintf("Batch of %d update(s)", len(p.Updates))
	default:
		return "Command"
	}
}

// validateGridShape checks a non-empty rectangular grid.
func validateGridShape(rows int, width func(i int) int) error {
	if rows == 0 {
		return fmt.Errorf("%w: empty grid", ErrInvalidCommand)
	}
	cols := width(0)
	if cols == 0 {
		return fmt.Errorf("%w: empty grid row", ErrInvalidCommand)
	}
	for i := 1; i < rows; i++ {
		if width(i) != cols {
			return fmt.Errorf("%w: ragged grid", ErrInvalidCommand)
		}
	}
	return nil
}

// validateStrip checks a structural edit's index and count.
func validateStrip(what string, start, count int) error {
	if start < 0 {
		return fmt.Errorf("%w: negative %s index %d", ErrInvalidCommand, what, start)
	}
	if count < 1 {
		return fmt.Errorf("%w: %s count %d", ErrInvalidCommand, what, count)
	}
	return nil
}
