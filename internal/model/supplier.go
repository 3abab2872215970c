package model

const TableSuppliers = "suppliers"

type Supplier struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
}

// Values returns the writable columns of the supplier. Absent phone and email are written as NULL.
func (s Supplier) Values() map[string]any {
	return map[string]any{
		"name":  s.Name,
		"phone": s.Phone,
		"email": s.Email,
	}
}
