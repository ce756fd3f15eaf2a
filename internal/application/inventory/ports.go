package inventory

import (
	"context"

	"github.com/tu-usuario/stock-control/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el insert del movimiento y la
// actualización del saldo se confirmen juntos o ninguno; un traslado envuelve
// sus dos patas en la misma transacción.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		recordRepo repository.StockRecordRepository,
		productRepo repository.ProductRepository,
	) error) error
}
