package core

// Status is the derived stock health of a product.
type Status string

const (
	StatusDepleted Status = "depleted"
	StatusLowStock Status = "low"
	StatusNormal   Status = "normal"
)

// Classify derives a Status from stock and its reorder threshold.
//
//	stock == 0              -> depleted
//	0 < stock <= minStock   -> low
//	stock > minStock        -> normal
func Classify(stock, minStock int) Status {
	switch {
	case stock <= 0:
		return StatusDepleted
	case stock <= minStock:
		return StatusLowStock
	default:
		return StatusNormal
	}
}

// Label returns the badge text shown next to a product.
func (s Status) Label() string {
	switch s {
	case StatusDepleted:
		return "Sin stock"
	case StatusLowStock:
		return "Stock bajo"
	default:
		return "OK"
	}
}

// matches reports whether a product with this status passes the filter.
func (f StatusFilter) matches(s Status) bool {
	switch f {
	case StatusZero:
		return s == StatusDepleted
	case StatusLow:
		return s == StatusLowStock
	case StatusOK:
		return s == StatusNormal
	default:
		return true
	}
}
