package models

// CatalogItem represents a single predefined laundry item and the pixel
// position where its count is drawn on the tally sheet template
type CatalogItem struct {
	Name  string `json:"name"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Group string `json:"group,omitempty"`
}

// CatalogCategory groups catalog items under a display heading
type CatalogCategory struct {
	Name  string        `json:"name"`
	Items []CatalogItem `json:"items"`
}

// Catalog is the static list of predefined items. It is built once at
// startup and never mutated afterwards.
type Catalog struct {
	Categories []CatalogCategory `json:"categories"`
}

// DefaultCatalog returns the laundry item catalog with the draw
// coordinates matching the tally sheet template raster
func DefaultCatalog() *Catalog {
	return &Catalog{
		Categories: []CatalogCategory{
			{
				Name: "Tops",
				Items: []CatalogItem{
					{Name: "T-Shirt", X: 235, Y: 210},
					{Name: "Polo Shirt", X: 235, Y: 265},
					{Name: "Long Sleeves", X: 235, Y: 320},
					{Name: "Blouse", X: 235, Y: 375},
					{Name: "Jacket / Hoodie", X: 235, Y: 430},
				},
			},
			{
				Name: "Bottoms",
				Items: []CatalogItem{
					{Name: "Shorts", X: 235, Y: 500},
					{Name: "Pants / Jeans", X: 235, Y: 555},
					{Name: "Skirt", X: 235, Y: 610},
					{Name: "Leggings", X: 235, Y: 665},
				},
			},
			{
				Name: "Linens",
				Items: []CatalogItem{
					{Name: "Bed Sheet", X: 560, Y: 210},
					{Name: "Blanket", X: 560, Y: 265},
					{Name: "Comforter", X: 560, Y: 320},
					{Name: "Pillow Case", X: 560, Y: 375},
					{Name: "Towel", X: 560, Y: 430},
					{Name: "Curtain", X: 560, Y: 485},
				},
			},
			{
				Name: "Small Items",
				Items: []CatalogItem{
					{Name: "Underwear", X: 560, Y: 555, Group: "delicates"},
					{Name: "Socks (pair)", X: 560, Y: 610, Group: "delicates"},
					{Name: "Handkerchief", X: 560, Y: 665, Group: "delicates"},
					{Name: "Face Towel", X: 560, Y: 720},
					{Name: "Cap", X: 560, Y: 775},
				},
			},
		},
	}
}

// Items returns every catalog item across all categories in draw order
func (c *Catalog) Items() []CatalogItem {
	var items []CatalogItem
	for _, cat := range c.Categories {
		items = append(items, cat.Items...)
	}
	return items
}

// HasItem reports whether the named item exists in the catalog
func (c *Catalog) HasItem(name string) bool {
	for _, cat := range c.Categories {
		for _, item := range cat.Items {
			if item.Name == name {
				return true
			}
		}
	}
	return false
}

// ToMap returns the catalog keyed by category name, the shape exposed
// on the /api/catalog endpoint
func (c *Catalog) ToMap() map[string][]CatalogItem {
	m := make(map[string][]CatalogItem, len(c.Categories))
	for _, cat := range c.Categories {
		m[cat.Name] = cat.Items
	}
	return m
}
