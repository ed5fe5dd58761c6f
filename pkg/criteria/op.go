package criteria

//go:generate go run github.com/dmarkham/enumer -type Op -trimprefix Op -transform title-lower -json -output op.gen.go

// Op is a filter operator. Its string form is the operator name used in
// query parameters, e.g. "greaterThanOrEqual" in level.greaterThanOrEqual=1.
type Op int

const (
	OpEquals Op = iota
	OpNotEquals
	OpIn
	OpNotIn
	OpSpecified
	OpGreaterThan
	OpGreaterThanOrEqual
	OpLessThan
	OpLessThanOrEqual
	OpContains
	OpDoesNotContain
)

// legacyOps are operator spellings accepted for compatibility with older clients.
var legacyOps = map[string]Op{
	"greaterOrEqualThan": OpGreaterThanOrEqual,
	"lessOrEqualThan":    OpLessThanOrEqual,
}

// ParseOp resolves an operator name, including the legacy spellings.
func ParseOp(name string) (Op, error) {
	if op, ok := legacyOps[name]; ok {
		return op, nil
	}
	return OpString(name)
}

// Multi reports whether the operator takes a list of values.
func (o Op) Multi() bool {
	return o == OpIn || o == OpNotIn
}

// Ranged reports whether the operator needs ordered values.
func (o Op) Ranged() bool {
	switch o {
	case OpGreaterThan, OpGreaterThanOrEqual, OpLessThan, OpLessThanOrEqual:
		return true
	}
	return false
}

// Textual reports whether the operator only applies to strings.
func (o Op) Textual() bool {
	return o == OpContains || o == OpDoesNotContain
}
