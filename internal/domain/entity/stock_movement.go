package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeIN       = "IN"       // entrada
	MovementTypeOUT      = "OUT"      // salida
	MovementTypeTRANSFER = "TRANSFER" // débito de traslado en bodega origen
)

// Motivos de movimiento.
const (
	ReasonSale       = "sale"
	ReasonPurchase   = "purchase"
	ReasonLoss       = "loss"
	ReasonReturn     = "return"
	ReasonAdjustment = "adjustment"
	ReasonTransfer   = "transfer"
)

// ValidMovementType indica si s es un tipo de movimiento soportado.
func ValidMovementType(s string) bool {
	return s == MovementTypeIN || s == MovementTypeOUT || s == MovementTypeTRANSFER
}

// ValidReason indica si s es un motivo soportado.
func ValidReason(s string) bool {
	switch s {
	case ReasonSale, ReasonPurchase, ReasonLoss, ReasonReturn, ReasonAdjustment, ReasonTransfer:
		return true
	}
	return false
}

// StockMovement es una entrada inmutable del ledger: un delta aplicado a un
// StockRecord en un instante. Quantity siempre es positiva; el signo lo da
// MovementType. ResultingBalance es el snapshot del saldo inmediatamente
// después de aplicar el movimiento (no se re-deriva con una lectura posterior).
// FromWarehouseID/ToWarehouseID solo se llenan en las patas de un traslado.
type StockMovement struct {
	ID                string
	StockRecordID     string
	MovementType      string
	Quantity          decimal.Decimal
	ResultingBalance  decimal.Decimal
	Reason            string
	AccountID         string
	UnitCost          *decimal.Decimal
	ReferenceDocument string
	Notes             string
	FromWarehouseID   string // vacío si no es traslado
	ToWarehouseID     string // vacío si no es traslado
	CreatedAt         time.Time
}

// SignedQuantity devuelve el delta con signo que este movimiento aplicó al
// saldo: IN suma; OUT y TRANSFER (débito en origen) restan. La pata de
// crédito de un traslado ya queda materializada como IN, así que sumar
// SignedQuantity sobre el historial reproduce el saldo.
func (m *StockMovement) SignedQuantity() decimal.Decimal {
	if m.MovementType == MovementTypeIN {
		return m.Quantity
	}
	return m.Quantity.Neg()
}
