package inventory

// IsLowStock decides whether a LOW_STOCK event must be derived after a
// mutation: available quantity at or below the threshold counts as low
// (non-strict). A nil quantity means "unknown" and never fires the rule.
func IsLowStock(i *Item) bool {
	return i.AvailableQty != nil && *i.AvailableQty <= i.Threshold
}
