package models

import "encoding/json"

// Product is a catalogue entry: an identity plus an arbitrary attribute
// mapping. Conventional attributes are name, price, category and stock.
type Product struct {
	ID    string `bson:"_id,omitempty" json:"-"`
	Attrs Attrs  `bson:",inline" json:"-"`
}

// Stock returns the quantity-in-stock attribute. A missing or non-numeric
// stock attribute counts as zero, so nothing can be added to a cart for it.
func (p Product) Stock() float64 {
	n, _ := p.Attrs.Number("stock")
	return n
}

// View is the wire shape of a product: its attributes with the id merged in.
func (p Product) View() Attrs {
	out := make(Attrs, len(p.Attrs)+1)
	for k, v := range p.Attrs {
		out[k] = v
	}
	out["id"] = p.ID
	return out
}

// MarshalJSON flattens the product to {id, ...attrs}.
func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.View())
}
