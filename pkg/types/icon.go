package types

// Icon is a minimap icon. In storage it is spread over three nullable columns.
type Icon struct {
	Shape IconShape  `json:"shape"`
	Size  IconSize   `json:"size"`
	Color StockColor `json:"color"`
}

// IconFromColumns rebuilds an icon from its stored columns. All three must be
// present or all absent; absent yields nil.
func IconFromColumns(shape *IconShape, size *IconSize, color *StockColor) (*Icon, error) {
	if shape == nil {
		if size != nil || color != nil {
			return nil, &CompositeError{Kind: "icon", Reason: "shape is absent but size or color is present"}
		}
		return nil, nil
	}
	if size == nil || color == nil {
		return nil, &CompositeError{Kind: "icon", Reason: "shape is present but size or color is absent"}
	}
	icon := &Icon{Shape: *shape, Size: *size, Color: *color}
	if err := icon.Validate(); err != nil {
		return nil, err
	}
	return icon, nil
}

// Columns spreads the icon into its stored columns; a nil icon yields three nils.
func (i *Icon) Columns() (*IconShape, *IconSize, *StockColor) {
	if i == nil {
		return nil, nil, nil
	}
	shape, size, color := i.Shape, i.Size, i.Color
	return &shape, &size, &color
}

func (i Icon) Validate() error {
	if err := i.Shape.Validate(); err != nil {
		return err
	}
	if err := i.Size.Validate(); err != nil {
		return err
	}
	return i.Color.Validate()
}
