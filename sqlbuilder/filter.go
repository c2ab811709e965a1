package sqlbuilder

import (
	"fmt"
	"strings"

	"github.com/Jacobbishopxy/fabrix/df"
)

// Conjunction is the combinator of a filter group.
type Conjunction uint8

// Group combinators.
const (
	// And requires every predicate in the group to hold.
	And Conjunction = iota
	// Or requires any predicate in the group to hold.
	Or
)

func (c Conjunction) String() string {
	if c == Or {
		return "OR"
	}
	return "AND"
}

// Operator is a comparison operator of a simple filter predicate.
type Operator uint8

// Comparison operators.
const (
	OpEq Operator = iota
	OpNeq
	OpGt
	OpGte
	OpLt
	OpLte
	OpIn
	OpBetween
	OpLike
)

var operatorSymbols = [...]string{
	OpEq:  "=",
	OpNeq: "<>",
	OpGt:  ">",
	OpGte: ">=",
	OpLt:  "<",
	OpLte: "<=",
}

// Expression is one node of a filter tree. The three node kinds are
// Conj, Simple and Nest.
type Expression interface {
	filterExpr()
}

// Conj switches the combinator used to fold the simple and nested
// predicates that follow it. It opens a new predicate group; groups
// themselves always join with AND (see Compile).
type Conj struct {
	Op Conjunction
}

func (Conj) filterExpr() {}

// Simple is an atomic predicate: a column compared against one or more
// literal values.
type Simple struct {
	Column string
	Op     Operator
	Values []df.Value
}

func (Simple) filterExpr() {}

// Nest embeds a sub-tree evaluated as one grouped predicate.
type Nest []Expression

func (Nest) filterExpr() {}

// Condition is a compiled filter: predicate text with placeholders and
// the matching argument list. An empty Pred matches all rows.
type Condition struct {
	Pred string
	Args []any
}

// Empty reports whether the condition matches all rows.
func (c Condition) Empty() bool { return c.Pred == "" }

// Compile compiles a filter tree into a Condition consumable by SELECT
// and DELETE synthesis alike. Placeholder numbering starts at startParam
// (1-based), so callers can append the condition after their own
// parameters.
//
// The algorithm keeps an ordered list of predicate groups, starting with
// one implicit AND group. A Conj node pushes a new group; Simple and
// Nest nodes fold into the current last group using its combinator.
// Groups are finally joined left-to-right with a plain AND, so a Conj
// only changes how subsequent siblings combine with each other, not how
// its group joins the groups before it. Callers must structure trees
// accordingly.
func (b Builder) Compile(exprs []Expression, startParam int) (Condition, error) {
	type group struct {
		op    Conjunction
		preds []string
	}
	var (
		groups = []group{{op: And}}
		args   []any
	)
	for _, e := range exprs {
		switch e := e.(type) {
		case Conj:
			groups = append(groups, group{op: e.Op})
		case Simple:
			pred, vs, err := b.simplePred(e, startParam+len(args))
			if err != nil {
				return Condition{}, err
			}
			last := &groups[len(groups)-1]
			last.preds = append(last.preds, pred)
			args = append(args, vs...)
		case Nest:
			sub, err := b.Compile(e, startParam+len(args))
			if err != nil {
				return Condition{}, err
			}
			if sub.Empty() {
				continue
			}
			last := &groups[len(groups)-1]
			last.preds = append(last.preds, "("+sub.Pred+")")
			args = append(args, sub.Args...)
		default:
			return Condition{}, fmt.Errorf("sqlbuilder: unknown filter expression %T", e)
		}
	}

	var parts []string
	for _, g := range groups {
		switch len(g.preds) {
		case 0:
		case 1:
			parts = append(parts, g.preds[0])
		default:
			joined := strings.Join(g.preds, " "+g.op.String()+" ")
			parts = append(parts, "("+joined+")")
		}
	}
	return Condition{Pred: strings.Join(parts, " AND "), Args: args}, nil
}

// simplePred renders one atomic predicate with placeholders starting at
// the given 1-based position.
func (b Builder) simplePred(e Simple, start int) (string, []any, error) {
	if err := checkIdent(e.Column); err != nil {
		return "", nil, err
	}
	col := b.quote(e.Column)

	need := 1
	switch e.Op {
	case OpBetween:
		need = 2
	case OpIn:
		if len(e.Values) == 0 {
			return "", nil, fmt.Errorf("sqlbuilder: IN predicate on %q requires at least one value", e.Column)
		}
		need = len(e.Values)
	}
	if len(e.Values) != need {
		return "", nil, fmt.Errorf("sqlbuilder: predicate on %q requires %d values, got %d", e.Column, need, len(e.Values))
	}

	args := make([]any, 0, need)
	for _, v := range e.Values {
		a, err := bridgeLiteral(v)
		if err != nil {
			return "", nil, err
		}
		args = append(args, a)
	}

	switch e.Op {
	case OpEq, OpNeq, OpGt, OpGte, OpLt, OpLte:
		return fmt.Sprintf("%s %s %s", col, operatorSymbols[e.Op], b.param(start)), args, nil
	case OpIn:
		return fmt.Sprintf("%s IN (%s)", col, b.params(start, need)), args, nil
	case OpBetween:
		return fmt.Sprintf("%s BETWEEN %s AND %s", col, b.param(start), b.param(start+1)), args, nil
	case OpLike:
		return fmt.Sprintf("%s LIKE %s", col, b.param(start)), args, nil
	default:
		return "", nil, fmt.Errorf("sqlbuilder: unknown operator %d", e.Op)
	}
}
