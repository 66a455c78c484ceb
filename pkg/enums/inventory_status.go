package enums

// InventoryStatus is derived from a product's quantity; it is never stored.
type InventoryStatus string

const (
	InventoryStatusOutOfStock InventoryStatus = "out_of_stock"
	InventoryStatusLowStock   InventoryStatus = "low_stock"
	InventoryStatusInStock    InventoryStatus = "in_stock"
)

// LowStockThreshold marks the quantity below which a product counts as low stock.
const LowStockThreshold = 5

// String implements fmt.Stringer.
func (s InventoryStatus) String() string {
	return string(s)
}

// InventoryStatusFor derives the status for the given on-hand quantity.
func InventoryStatusFor(quantity int) InventoryStatus {
	switch {
	case quantity <= 0:
		return InventoryStatusOutOfStock
	case quantity < LowStockThreshold:
		return InventoryStatusLowStock
	default:
		return InventoryStatusInStock
	}
}
