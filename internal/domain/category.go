package domain

// Category represents a product category.
type Category string

const (
	CategoryGear     Category = "Ausrüstung" // premium gear, low returns
	CategoryApparel  Category = "Bekleidung" // mid-priced clothing, mid returns
	CategoryFootwear Category = "Schuhe"     // footwear, high returns
)

// String returns the string representation of Category.
func (c Category) String() string {
	return string(c)
}

// IsValid checks if the category is a valid value.
func (c Category) IsValid() bool {
	return c == CategoryGear || c == CategoryApparel || c == CategoryFootwear
}

// Categories lists all categories in catalog declaration order.
func Categories() []Category {
	return []Category{CategoryGear, CategoryApparel, CategoryFootwear}
}
