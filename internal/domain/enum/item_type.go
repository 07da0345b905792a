package enum

// ItemType discriminates the four quotation line item variants.
type ItemType string

const (
	ItemTypeComponent ItemType = "component"
	ItemTypeAssembly  ItemType = "assembly"
	ItemTypeLabor     ItemType = "labor"
	ItemTypeCustom    ItemType = "custom"
)

// Valid reports whether the item type is a known variant.
func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeComponent, ItemTypeAssembly, ItemTypeLabor, ItemTypeCustom:
		return true
	}
	return false
}
