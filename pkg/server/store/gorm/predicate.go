package gorm

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/doodlesbykumbi/merchant-in-go/pkg/criteria"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Where adds one WHERE expression per condition of the predicate.
func Where(db *gorm.DB, p criteria.Predicate) *gorm.DB {
	for _, c := range p.Conditions {
		db = db.Where(Expression(c))
	}
	return db
}

// Expression translates a condition to a GORM clause expression.
func Expression(c criteria.Condition) clause.Expression {
	col := clause.Column{Name: c.Column}
	switch c.Op {
	case criteria.OpEquals:
		return clause.Eq{Column: col, Value: c.Value}
	case criteria.OpNotEquals:
		return clause.Neq{Column: col, Value: c.Value}
	case criteria.OpIn:
		return clause.IN{Column: col, Values: c.Values}
	case criteria.OpNotIn:
		return clause.Not(clause.IN{Column: col, Values: c.Values})
	case criteria.OpSpecified:
		if specified, _ := c.Value.(bool); specified {
			return clause.Expr{SQL: "? IS NOT NULL", Vars: []interface{}{col}}
		}
		return clause.Expr{SQL: "? IS NULL", Vars: []interface{}{col}}
	case criteria.OpGreaterThan:
		return clause.Gt{Column: col, Value: c.Value}
	case criteria.OpGreaterThanOrEqual:
		return clause.Gte{Column: col, Value: c.Value}
	case criteria.OpLessThan:
		return clause.Lt{Column: col, Value: c.Value}
	case criteria.OpLessThanOrEqual:
		return clause.Lte{Column: col, Value: c.Value}
	case criteria.OpContains:
		return clause.Expr{SQL: "UPPER(?) LIKE ?", Vars: []interface{}{col, likePattern(c.Value)}}
	case criteria.OpDoesNotContain:
		return clause.Expr{SQL: "UPPER(?) NOT LIKE ?", Vars: []interface{}{col, likePattern(c.Value)}}
	}
	// unknown operators match nothing
	return clause.Expr{SQL: "1 = 0"}
}

func likePattern(v any) string {
	s, _ := criteria.Normalize(v).(string)
	return "%" + likeEscaper.Replace(strings.ToUpper(s)) + "%"
}
