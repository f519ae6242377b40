package inventory

import "Gin_postgres_redis_lab_inventory/models"

// LowStockThreshold is the fixed policy line between low_stock and available.
const LowStockThreshold = 10

// StatusForQuantity derives a component's stock status from its current
// quantity. Callers are responsible for keeping the quantity inside
// [0, initial_quantity] before asking for a status.
func StatusForQuantity(quantity int) string {
	switch {
	case quantity == 0:
		return models.StatusOutOfStock
	case quantity < LowStockThreshold:
		return models.StatusLowStock
	default:
		return models.StatusAvailable
	}
}
