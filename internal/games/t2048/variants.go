package t2048

// Variant is a registered board configuration. The size is fixed for the
// lifetime of every game created from it.
type Variant struct {
	ID    string
	Title string
	Size  int
}

// Variants lists the playable boards.
var Variants = []Variant{
	{ID: "2048", Title: "2048", Size: DefaultSize},
	{ID: "2048_mini", Title: "2048 Mini (3x3)", Size: 3},
	{ID: "2048_large", Title: "2048 Large (5x5)", Size: 5},
	{ID: "2048_huge", Title: "2048 Huge (6x6)", Size: 6},
}

// VariantByID returns the variant with the given ID.
func VariantByID(id string) (Variant, bool) {
	for _, v := range Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}
