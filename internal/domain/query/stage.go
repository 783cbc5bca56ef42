package query

// Stage is one aggregation pipeline stage, e.g. {"$match": {...}}.
type Stage map[string]any

// Pipeline is an ordered list of stages applied server-side.
type Pipeline []Stage

// Acc is a group-stage accumulator, e.g. {"$sum": "$total_amount"}.
type Acc map[string]any

// First takes the first value of a field within a group. Grouping by record
// id with First accumulators gives first-value dedupe semantics.
func First(field string) Acc {
	return Acc{"$first": Field(field)}
}

// Sum accumulates the sum of an expression within a group.
func Sum(operand any) Acc {
	return Acc{"$sum": operand}
}

// Match filters documents using an expression-based predicate.
func Match(expr Expr) Stage {
	return Stage{"$match": Expr{"$expr": expr}}
}

// Group groups documents by id with the given accumulators.
func Group(id any, accs map[string]Acc) Stage {
	doc := map[string]any{"_id": id}
	for field, acc := range accs {
		doc[field] = acc
	}
	return Stage{"$group": doc}
}

// Lookup joins documents from another schema, producing an array field.
func Lookup(from, localField, foreignField, as string) Stage {
	return Stage{"$lookup": map[string]any{
		"from":         from,
		"localField":   localField,
		"foreignField": foreignField,
		"as":           as,
	}}
}

// Project selects and computes output fields.
func Project(fields map[string]any) Stage {
	return Stage{"$project": fields}
}

// Limit caps the number of output documents.
func Limit(n int) Stage {
	return Stage{"$limit": n}
}

// Sort orders output documents by one field; 1 ascending, -1 descending.
func Sort(field string, ascending bool) Stage {
	dir := 1
	if !ascending {
		dir = -1
	}
	return Stage{"$sort": map[string]any{field: dir}}
}
