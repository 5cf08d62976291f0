package expr

import (
	"github.com/relcore/hofexpr/types"
	"github.com/relcore/hofexpr/values"
)

// Literal is a constant leaf expression: it ignores its Row entirely and
// always evaluates to the same value. The HOF core treats the general
// expression evaluator as an external collaborator; Literal is the minimum
// leaf the embedding engine would otherwise supply, needed here to drive
// this module's own tests and cmd/hofcheck end to end.
type Literal struct {
	dataType types.DataType
	nullable bool
	value    values.Value
}

var _ Expression = (*Literal)(nil)

// NewLiteral builds a constant of the given type. If v is nil or
// values.Null{}, nullable is forced true regardless of the nullable
// argument, since a null literal cannot claim non-nullability.
func NewLiteral(dataType types.DataType, nullable bool, v values.Value) *Literal {
	if values.IsNull(v) {
		nullable = true
	}
	return &Literal{dataType: dataType, nullable: nullable, value: v}
}

func (l *Literal) DataType() types.DataType    { return l.dataType }
func (l *Literal) Nullable() bool              { return l.nullable }
func (l *Literal) Children() []Expression      { return nil }
func (l *Literal) Resolved() bool              { return l.dataType.Kind() != types.Unknown }
func (l *Literal) Eval(row Row) (values.Value, error) {
	if values.IsNull(l.value) {
		return values.Null{}, nil
	}
	return l.value, nil
}
