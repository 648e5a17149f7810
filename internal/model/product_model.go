package model

import "github.com/shopspring/decimal"

func init() {
	// money goes over the wire as a plain JSON number (24000, not "24000")
	decimal.MarshalJSONWithoutQuotes = true
}

type Product struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// ProductPatch carries a partial update; nil fields keep their stored value.
type ProductPatch struct {
	Name  *string          `json:"name"`
	Price *decimal.Decimal `json:"price"`
}
