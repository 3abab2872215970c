package model

const TableBranches = "branches"

type Branch struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsDefault bool   `json:"is_default"`
}

// Values returns the writable columns of the branch.
func (b Branch) Values() map[string]any {
	return map[string]any{
		"name":       b.Name,
		"is_default": b.IsDefault,
	}
}
