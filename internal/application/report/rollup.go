package report

import (
	"github.com/bizops/reporting/internal/domain/query"
	"github.com/bizops/reporting/internal/domain/report"
)

// maxRollupRows caps every rollup result so responses stay renderable.
const maxRollupRows = 10000

// RollupPipeline builds the tabular rollup for one entity type: dedupe by
// record id with first-value semantics, resolve foreign keys to display
// names, project the report's field set with its computed fields, cap the
// result size and sort ascending by the entity's date field. The output row
// shape is fixed per type regardless of input volume.
func RollupPipeline(entity report.EntityType, match query.Expr) query.Pipeline {
	dateField := entity.DateField()

	var stages query.Pipeline
	stages = append(stages, query.Match(match))
	stages = append(stages, entityRollupStages(entity, dateField)...)
	stages = append(stages,
		query.Limit(maxRollupRows),
		query.Sort(dateField, true),
	)
	return stages
}

func entityRollupStages(entity report.EntityType, dateField string) query.Pipeline {
	switch entity {
	case report.EntitySale:
		return query.Pipeline{
			dedupe(dateField, "status", "pay_type", "customer", "product",
				"total_amount", "paid_amount", "discount", "profit"),
			nameLookup("customers", "customer"),
			nameLookup("products", "product"),
			query.Project(map[string]any{
				dateField:       1,
				"status":        1,
				"pay_type":      1,
				"customer_name": query.FirstOf(query.Field("customer_doc.name")),
				"product_name":  query.FirstOf(query.Field("product_doc.name")),
				"total_amount":  1,
				"paid_amount":   1,
				"discount":      1,
				"profit":        1,
				"remain_amount": remainAmount(),
				"purchase_cost": query.Subtract(query.Field("total_amount"), query.Field("profit")),
				"loss":          query.Min(query.Field("profit"), 0),
			}),
		}

	case report.EntityPurchase:
		return query.Pipeline{
			dedupe(dateField, "type", "supplier", "product", "total_amount", "paid_amount"),
			nameLookup("suppliers", "supplier"),
			nameLookup("products", "product"),
			query.Project(map[string]any{
				dateField:       1,
				"type":          1,
				"supplier_name": query.FirstOf(query.Field("supplier_doc.name")),
				"product_name":  query.FirstOf(query.Field("product_doc.name")),
				"total_amount":  1,
				"paid_amount":   1,
				"remain_amount": remainAmount(),
			}),
		}

	case report.EntityExpense:
		return query.Pipeline{
			dedupe(dateField, "expense_type", "total_amount", "paid_amount"),
			nameLookup("expense_types", "expense_type"),
			query.Project(map[string]any{
				dateField:           1,
				"expense_type_name": query.FirstOf(query.Field("expense_type_doc.name")),
				"total_amount":      1,
				"paid_amount":       1,
				"remain_amount":     remainAmount(),
			}),
		}

	case report.EntityDebt, report.EntityDebtHistory:
		return query.Pipeline{
			dedupe(dateField, "type", "customer", "total_amount", "paid_amount"),
			nameLookup("customers", "customer"),
			query.Project(map[string]any{
				dateField:       1,
				"type":          1,
				"customer_name": query.FirstOf(query.Field("customer_doc.name")),
				"total_amount":  1,
				"paid_amount":   1,
				"remain_amount": remainAmount(),
			}),
		}

	case report.EntityPayment:
		return query.Pipeline{
			dedupe(dateField, "payment_type", "customer", "amount"),
			nameLookup("customers", "customer"),
			query.Project(map[string]any{
				dateField:       1,
				"payment_type":  1,
				"customer_name": query.FirstOf(query.Field("customer_doc.name")),
				"amount":        1,
			}),
		}

	case report.EntityService:
		return query.Pipeline{
			dedupe(dateField, "status", "customer", "device", "product",
				"service_cost", "product_cost"),
			nameLookup("customers", "customer"),
			nameLookup("products", "product"),
			query.Project(map[string]any{
				dateField:       1,
				"status":        1,
				"customer_name": query.FirstOf(query.Field("customer_doc.name")),
				"product_name":  query.FirstOf(query.Field("product_doc.name")),
				"device":        1,
				"service_cost":  1,
				"product_cost":  1,
				"total_cost":    query.Add(query.Field("service_cost"), query.Field("product_cost")),
			}),
		}

	case report.EntityTruckOrder, report.EntityCargo:
		return query.Pipeline{
			dedupe(dateField, "truck", "customer", "total_amount", "paid_amount"),
			nameLookup("trucks", "truck"),
			nameLookup("customers", "customer"),
			query.Project(map[string]any{
				dateField:       1,
				"truck_name":    query.FirstOf(query.Field("truck_doc.name")),
				"customer_name": query.FirstOf(query.Field("customer_doc.name")),
				"total_amount":  1,
				"paid_amount":   1,
				"remain_amount": remainAmount(),
			}),
		}

	case report.EntityQuotationInvoice:
		return query.Pipeline{
			dedupe(dateField, "customer", "total_amount", "paid_amount"),
			nameLookup("customers", "customer"),
			query.Project(map[string]any{
				dateField:       1,
				"customer_name": query.FirstOf(query.Field("customer_doc.name")),
				"total_amount":  1,
				"paid_amount":   1,
				"remain_amount": remainAmount(),
			}),
		}

	case report.EntityAdjustment:
		return query.Pipeline{
			dedupe(dateField, "type", "product", "quantity", "amount"),
			nameLookup("products", "product"),
			query.Project(map[string]any{
				dateField:      1,
				"type":         1,
				"product_name": query.FirstOf(query.Field("product_doc.name")),
				"quantity":     1,
				"amount":       1,
			}),
		}

	case report.EntityStock:
		return query.Pipeline{
			dedupe(dateField, "type", "product", "quantity"),
			nameLookup("products", "product"),
			query.Project(map[string]any{
				dateField:      1,
				"type":         1,
				"product_name": query.FirstOf(query.Field("product_doc.name")),
				"quantity":     1,
			}),
		}

	case report.EntityOrder:
		// Orders roll their linked sales up into total and count.
		return query.Pipeline{
			dedupe(dateField, "customer", "status"),
			query.Lookup("sales", "_id", "order", "order_sales"),
			nameLookup("customers", "customer"),
			query.Project(map[string]any{
				dateField:       1,
				"status":        1,
				"customer_name": query.FirstOf(query.Field("customer_doc.name")),
				"total_amount":  query.SumOf(query.Field("order_sales.total_amount")),
				"length":        query.Size(query.Field("order_sales")),
			}),
		}

	case report.EntityCustomerCount:
		return query.Pipeline{
			dedupe(dateField, "customer", "amount"),
			nameLookup("customers", "customer"),
			query.Project(map[string]any{
				dateField:       1,
				"customer_name": query.FirstOf(query.Field("customer_doc.name")),
				"amount":        1,
			}),
		}

	case report.EntityFreight:
		return query.Pipeline{
			dedupe(dateField, "total_amount", "paid_amount"),
			query.Project(map[string]any{
				dateField:       1,
				"total_amount":  1,
				"paid_amount":   1,
				"remain_amount": remainAmount(),
			}),
		}

	case report.EntityTransaction:
		return query.Pipeline{
			dedupe(dateField, "type", "amount"),
			query.Project(map[string]any{
				dateField: 1,
				"type":    1,
				"amount":  1,
			}),
		}
	}

	// Unreachable for known entity types; keep the raw documents if a new
	// type is added without a pipeline.
	return nil
}

// SummaryPipeline builds the grouped rollup the income statement and
// dashboard fold over. Group keys become the row "_id" values the
// derivation's property extraction filters on.
func SummaryPipeline(entity report.EntityType, match query.Expr) query.Pipeline {
	stages := query.Pipeline{query.Match(match)}

	switch entity {
	case report.EntitySale:
		stages = append(stages, query.Group(query.Field("pay_type"), map[string]query.Acc{
			"total_amount": query.Sum(query.Field("total_amount")),
			"paid_amount":  query.Sum(query.Field("paid_amount")),
			"discount":     query.Sum(query.Field("discount")),
			"profit":       query.Sum(query.Field("profit")),
			"purchase_cost": query.Sum(
				query.Subtract(query.Field("total_amount"), query.Field("profit")),
			),
		}))

	case report.EntityDebt, report.EntityDebtHistory:
		stages = append(stages, query.Group(query.Field("type"), map[string]query.Acc{
			"total_amount":  query.Sum(query.Field("total_amount")),
			"paid_amount":   query.Sum(query.Field("paid_amount")),
			"remain_amount": query.Sum(remainAmount()),
		}))

	case report.EntityService:
		stages = append(stages, query.Group(query.Field("status"), map[string]query.Acc{
			"total_amount": query.Sum(query.Field("total_amount")),
			"total_cost": query.Sum(
				query.Add(query.Field("service_cost"), query.Field("product_cost")),
			),
		}))

	case report.EntityPayment:
		stages = append(stages, query.Group(nil, map[string]query.Acc{
			"amount": query.Sum(query.Field("amount")),
		}))

	case report.EntityCustomerCount:
		stages = append(stages, query.Group(nil, map[string]query.Acc{
			"amount": query.Sum(query.Field("amount")),
			"count":  query.Sum(1),
		}))

	default:
		// Paid/remain split over one group covers the remaining money-
		// carrying types (purchases, expenses, freights, truck orders,
		// cargos, quotation invoices, transactions, ...).
		stages = append(stages, query.Group(nil, map[string]query.Acc{
			"total_amount":  query.Sum(query.Field("total_amount")),
			"paid_amount":   query.Sum(query.Field("paid_amount")),
			"remain_amount": query.Sum(remainAmount()),
		}))
	}

	return stages
}

// dedupe groups by record id taking the first value of each listed field.
func dedupe(fields ...string) query.Stage {
	accs := make(map[string]query.Acc, len(fields))
	for _, f := range fields {
		accs[f] = query.First(f)
	}
	return query.Group(query.Field("_id"), accs)
}

// nameLookup joins the named schema into <localField>_doc. Projections take
// the first element's name since the join is on a unique id.
func nameLookup(from, localField string) query.Stage {
	return query.Lookup(from, localField, "_id", localField+"_doc")
}

func remainAmount() query.Expr {
	return query.Subtract(query.Field("total_amount"), query.Field("paid_amount"))
}
