package entity

import "github.com/shopspring/decimal"

// StockItem es una fila del snapshot de inventario de la publicación.
// Se cruza con el historial de órdenes por ItemID o por SKU (ItemID
// tiene prioridad cuando ambos están presentes).
type StockItem struct {
	ItemID          string
	SKU             string
	Titulo          string
	StockDisponible int
	Precio          decimal.Decimal
	Estado          string
}
