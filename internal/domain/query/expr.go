// Package query builds the aggregation documents understood by the remote
// aggregation API. Expressions and stages marshal directly to the JSON wire
// shape the API expects, so every constructor returns plain map-backed values.
package query

// Expr is a single match expression fragment, e.g. {"$eq": [a, b]}.
type Expr map[string]any

// Field references a document field inside an expression, e.g. "$total_amount".
func Field(name string) string {
	return "$" + name
}

// And combines expressions into a conjunction.
func And(exprs ...Expr) Expr {
	return Expr{"$and": exprs}
}

// Or combines expressions into a disjunction.
func Or(exprs ...Expr) Expr {
	return Expr{"$or": exprs}
}

// Eq builds an equality comparison between two operands.
func Eq(a, b any) Expr {
	return Expr{"$eq": []any{a, b}}
}

// Ne builds an inequality comparison between two operands.
func Ne(a, b any) Expr {
	return Expr{"$ne": []any{a, b}}
}

// Gt builds a greater-than comparison.
func Gt(a, b any) Expr {
	return Expr{"$gt": []any{a, b}}
}

// Gte builds a greater-than-or-equal comparison.
func Gte(a, b any) Expr {
	return Expr{"$gte": []any{a, b}}
}

// Lte builds a less-than-or-equal comparison.
func Lte(a, b any) Expr {
	return Expr{"$lte": []any{a, b}}
}

// ToObjectID converts an operand to the API's object id type. Foreign-key
// fields are stored as object ids, so equality against a client-supplied hex
// string needs this conversion on the literal side.
func ToObjectID(v any) Expr {
	return Expr{"$toObjectId": v}
}

// ToDate converts an operand to the API's date type.
func ToDate(v any) Expr {
	return Expr{"$toDate": v}
}

// Cond builds a conditional expression: ifExpr ? then : else.
func Cond(ifExpr Expr, then, els any) Expr {
	return Expr{"$cond": []any{ifExpr, then, els}}
}

// Subtract builds an arithmetic subtraction of two operands.
func Subtract(a, b any) Expr {
	return Expr{"$subtract": []any{a, b}}
}

// Add builds an arithmetic addition of operands.
func Add(operands ...any) Expr {
	return Expr{"$add": operands}
}

// Min returns the minimum of the given operands.
func Min(operands ...any) Expr {
	return Expr{"$min": operands}
}

// FirstOf takes the first element of an array-valued operand. Lookups
// produce array fields; joining a single document projects through this.
func FirstOf(v any) Expr {
	return Expr{"$first": v}
}

// SumOf sums an array-valued operand inside a projection.
func SumOf(v any) Expr {
	return Expr{"$sum": v}
}

// Size returns the number of elements of an array operand.
func Size(v any) Expr {
	return Expr{"$size": v}
}
