package report

import "github.com/de-tools/erate-atlas/pkg/models/domain"

// Aggregate folds line items into the year -> vendor -> organization tree.
// Repeated identical items add to the totals; the report counts funded
// instances, not distinct purchases. Totals are independent of input order.
func Aggregate(items []domain.LineItem) *domain.AggregationNode {
	node := domain.NewAggregationNode()
	for _, item := range items {
		node.Add(item)
	}
	return node
}

// Merge folds src into dst and returns dst. The operation is associative and
// commutative over totals, so per-year aggregates can be combined in any
// order before rendering.
func Merge(dst, src *domain.AggregationNode) *domain.AggregationNode {
	if src == nil {
		return dst
	}
	if dst == nil {
		return src
	}
	for _, year := range src.Years {
		for _, vendor := range year.Vendors {
			for _, org := range vendor.Organizations {
				for _, item := range org.Items {
					dst.Add(item)
				}
			}
		}
	}
	return dst
}
