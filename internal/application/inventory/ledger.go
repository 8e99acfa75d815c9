package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/tiles-api/internal/domain"
	"github.com/jhoicas/tiles-api/internal/domain/entity"
	"github.com/jhoicas/tiles-api/internal/domain/repository"
)

// LedgerConfig política del libro.
type LedgerConfig struct {
	// AllowNegative permite que un traslado deje el origen (o una reversión deje el destino) por debajo de cero.
	AllowNegative bool
}

// Ledger es el libro de inventario: aplica y revierte traslados entre ubicaciones manteniendo
// cantidad(p, ubicación) = stock inicial + entradas - salidas. Cada operación corre en una sola transacción
// y bloquea las dos filas de inventario en orden ascendente de ubicación.
type Ledger struct {
	txRunner     TxRunner
	locationRepo repository.LocationRepository
	movementRepo repository.StockMovementRepository
	cfg          LedgerConfig
	log          zerolog.Logger
	now          func() time.Time
}

// NewLedger construye el libro.
func NewLedger(
	txRunner TxRunner,
	locationRepo repository.LocationRepository,
	movementRepo repository.StockMovementRepository,
	cfg LedgerConfig,
	log zerolog.Logger,
) *Ledger {
	return &Ledger{
		txRunner:     txRunner,
		locationRepo: locationRepo,
		movementRepo: movementRepo,
		cfg:          cfg,
		log:          log,
		now:          func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// ApplyMovementInput entrada de un traslado.
type ApplyMovementInput struct {
	ProductID      string
	FromLocationID string
	ToLocationID   string
	Quantity       int64
	Notes          string
}

// ApplyMovement descuenta Quantity del registro (producto, origen), suma Quantity al registro (producto, destino)
// creándolo si no existe, y persiste el movimiento. Todo o nada.
func (l *Ledger) ApplyMovement(ctx context.Context, in ApplyMovementInput) (*entity.StockMovement, error) {
	in.ProductID = strings.TrimSpace(in.ProductID)
	in.FromLocationID = strings.TrimSpace(in.FromLocationID)
	in.ToLocationID = strings.TrimSpace(in.ToLocationID)

	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if in.ProductID == "" || in.FromLocationID == "" || in.ToLocationID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.FromLocationID == in.ToLocationID {
		return nil, domain.ErrInvalidTransfer
	}

	dest, err := l.locationRepo.GetByID(ctx, in.ToLocationID)
	if err != nil {
		return nil, domain.NewStorageError("get destination location", err)
	}
	if dest == nil {
		return nil, domain.ErrNotFound
	}

	movement := &entity.StockMovement{
		ID:             uuid.New().String(),
		ProductID:      in.ProductID,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		Quantity:       in.Quantity,
		MovementDate:   l.now(),
		Notes:          in.Notes,
	}

	var srcAfter, dstAfter int64
	err = l.txRunner.Run(ctx, func(invRepo repository.InventoryRepository, movRepo repository.StockMovementRepository) error {
		// Sin origen el error es el mismo sea cual sea el orden de bloqueo: el destino no llega a crearse.
		existing, err := invRepo.Get(ctx, movement.ProductID, movement.FromLocationID)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrSourceNotFound
		}

		src, dst, err := lockTransferRows(ctx, invRepo, movement.ProductID, movement.FromLocationID, movement.ToLocationID, true)
		if err != nil {
			return err
		}
		if src == nil {
			return domain.ErrSourceNotFound
		}

		srcAfter = src.Quantity - movement.Quantity
		dstAfter = dst.Quantity + movement.Quantity
		if srcAfter < 0 && !l.cfg.AllowNegative {
			return domain.ErrInsufficientStock
		}

		if err := invRepo.UpdateQuantity(ctx, src.ID, srcAfter); err != nil {
			return err
		}
		if err := invRepo.UpdateQuantity(ctx, dst.ID, dstAfter); err != nil {
			return err
		}
		return movRepo.Create(ctx, movement)
	})
	if err != nil {
		err = classify("apply movement", err)
		l.logFailure(err, "apply", movement)
		return nil, err
	}

	l.log.Info().
		Str("movement_id", movement.ID).
		Str("product_id", movement.ProductID).
		Str("from", movement.FromLocationID).
		Str("to", movement.ToLocationID).
		Int64("quantity", movement.Quantity).
		Int64("from_qty", srcAfter).
		Int64("to_qty", dstAfter).
		Msg("movimiento aplicado")
	return movement, nil
}

// ReverseMovement deshace exactamente un movimiento: suma Quantity al origen, la resta al destino
// y elimina el movimiento. Un movimiento ya revertido no existe: la segunda llamada da ErrMovementNotFound.
func (l *Ledger) ReverseMovement(ctx context.Context, movementID string) (*entity.StockMovement, error) {
	movementID = strings.TrimSpace(movementID)
	if movementID == "" {
		return nil, domain.ErrMovementNotFound
	}

	var reversed *entity.StockMovement
	err := l.txRunner.Run(ctx, func(invRepo repository.InventoryRepository, movRepo repository.StockMovementRepository) error {
		// El bloqueo del movimiento va antes que el de las filas de inventario.
		m, err := movRepo.GetForUpdate(ctx, movementID)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrMovementNotFound
		}

		src, dst, err := lockTransferRows(ctx, invRepo, m.ProductID, m.FromLocationID, m.ToLocationID, false)
		if err != nil {
			return err
		}
		if src == nil || dst == nil {
			return domain.ErrInconsistentState
		}

		dstAfter := dst.Quantity - m.Quantity
		if dstAfter < 0 && !l.cfg.AllowNegative {
			return domain.ErrInsufficientStock
		}
		if err := invRepo.UpdateQuantity(ctx, src.ID, src.Quantity+m.Quantity); err != nil {
			return err
		}
		if err := invRepo.UpdateQuantity(ctx, dst.ID, dstAfter); err != nil {
			return err
		}
		if err := movRepo.Delete(ctx, m.ID); err != nil {
			return err
		}
		reversed = m
		return nil
	})
	if err != nil {
		err = classify("reverse movement", err)
		l.logFailure(err, "reverse", &entity.StockMovement{ID: movementID})
		return nil, err
	}

	l.log.Info().
		Str("movement_id", reversed.ID).
		Str("product_id", reversed.ProductID).
		Int64("quantity", reversed.Quantity).
		Msg("movimiento revertido")
	return reversed, nil
}

// GetMovement obtiene un movimiento por ID.
func (l *Ledger) GetMovement(ctx context.Context, id string) (*entity.StockMovement, error) {
	m, err := l.movementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewStorageError("get movement", err)
	}
	if m == nil {
		return nil, domain.ErrMovementNotFound
	}
	return m, nil
}

// ListMovements lista movimientos (más recientes primero) con filtros opcionales.
func (l *Ledger) ListMovements(ctx context.Context, filter repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, error) {
	list, err := l.movementRepo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, domain.NewStorageError("list movements", err)
	}
	return list, nil
}

// lockTransferRows bloquea (producto, from) y (producto, to) en orden ascendente de ubicación para que
// dos traslados cruzados no se bloqueen mutuamente. Con createDest, el destino se crea en 0 si falta.
// Un registro inexistente se devuelve como nil.
func lockTransferRows(
	ctx context.Context,
	invRepo repository.InventoryRepository,
	productID, fromID, toID string,
	createDest bool,
) (src, dst *entity.InventoryRecord, err error) {
	order := [2]string{fromID, toID}
	if toID < fromID {
		order = [2]string{toID, fromID}
	}
	for _, loc := range order {
		switch {
		case loc == fromID:
			src, err = invRepo.GetForUpdate(ctx, productID, loc)
			if err == nil && src == nil && createDest {
				// Sin origen no hay traslado; no tiene sentido crear el destino.
				return nil, nil, nil
			}
		case createDest:
			dst, err = invRepo.GetOrCreateForUpdate(ctx, productID, loc)
		default:
			dst, err = invRepo.GetForUpdate(ctx, productID, loc)
		}
		if err != nil {
			return nil, nil, err
		}
	}
	return src, dst, nil
}

// ledgerErrors son los errores que el libro devuelve tal cual; cualquier otro es del almacenamiento.
var ledgerErrors = []error{
	domain.ErrInvalidQuantity,
	domain.ErrInvalidTransfer,
	domain.ErrInvalidInput,
	domain.ErrSourceNotFound,
	domain.ErrMovementNotFound,
	domain.ErrInconsistentState,
	domain.ErrInsufficientStock,
	domain.ErrNotFound,
	domain.ErrStorage,
}

func classify(op string, err error) error {
	for _, target := range ledgerErrors {
		if errors.Is(err, target) {
			return err
		}
	}
	return domain.NewStorageError(op, err)
}

func (l *Ledger) logFailure(err error, op string, m *entity.StockMovement) {
	ev := l.log.Warn()
	if errors.Is(err, domain.ErrStorage) {
		ev = l.log.Error()
	}
	ev.Err(err).
		Str("op", op).
		Str("movement_id", m.ID).
		Str("product_id", m.ProductID).
		Msg("movimiento rechazado")
}
