package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Cartuchos-api/internal/application/dto"
	"github.com/jhoicas/Cartuchos-api/internal/domain"
	"github.com/jhoicas/Cartuchos-api/internal/domain/entity"
	domlifecycle "github.com/jhoicas/Cartuchos-api/internal/domain/lifecycle"
	"github.com/jhoicas/Cartuchos-api/internal/domain/repository"
	"github.com/jhoicas/Cartuchos-api/internal/infrastructure/metrics"
)

// UseCase ejecuta transiciones del ciclo de vida de cartuchos de forma
// transaccional, con bloqueo de fila (SELECT FOR UPDATE) sobre el cartucho,
// y registra la operación de auditoría correspondiente en la misma tx.
// Es el único punto de entrada de escritura para la capa HTTP.
type UseCase struct {
	txRunner      TxRunner
	cartridgeRepo repository.CartridgeRepository
	locationRepo  repository.LocationRepository
	userRepo      repository.UserRepository
	operationRepo repository.OperationRepository
	metrics       *metrics.Metrics
}

// NewUseCase construye el caso de uso. metrics puede ser nil (no-op).
func NewUseCase(
	txRunner TxRunner,
	cartridgeRepo repository.CartridgeRepository,
	locationRepo repository.LocationRepository,
	userRepo repository.UserRepository,
	operationRepo repository.OperationRepository,
	m *metrics.Metrics,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		cartridgeRepo: cartridgeRepo,
		locationRepo:  locationRepo,
		userRepo:      userRepo,
		operationRepo: operationRepo,
		metrics:       m,
	}
}

// PerformInput entrada para una operación explícita.
type PerformInput struct {
	Type        string
	Count       int
	CartridgeID string
	LocationID  *string
	Notes       string
}

// Perform aplica una operación explícita: resuelve referencias, valida la
// transición contra el estado actual, muta el cartucho y agrega la operación
// de auditoría, todo dentro de una transacción. Un rechazo del validador no
// toca ningún estado.
func (uc *UseCase) Perform(ctx context.Context, in PerformInput, username string) (*dto.OperationResponse, error) {
	if in.CartridgeID == "" || in.Count <= 0 {
		return nil, domain.ErrInvalidInput
	}

	user, err := uc.resolveUser(username)
	if err != nil {
		return nil, err
	}

	var location *entity.Location
	if in.LocationID != nil {
		location, err = uc.locationRepo.GetByID(*in.LocationID)
		if err != nil {
			return nil, err
		}
		if location == nil {
			return nil, domain.ErrLocationNotFound
		}
	}

	var created *entity.Operation
	err = uc.txRunner.Run(ctx, func(
		cartridgeRepo repository.CartridgeRepository,
		operationRepo repository.OperationRepository,
		_ repository.LocationRepository,
	) error {
		// Bloquea la fila del cartucho: dos operaciones concurrentes sobre el
		// mismo cartucho se serializan aquí.
		cartridge, err := cartridgeRepo.GetForUpdate(in.CartridgeID)
		if err != nil {
			return err
		}
		if cartridge == nil {
			return domain.ErrCartridgeNotFound
		}

		if err := domlifecycle.Validate(cartridge.Status, in.Type); err != nil {
			uc.metrics.TransitionRejected()
			return err
		}

		newStatus, postLocation := domlifecycle.PostState(in.Type, in.LocationID)
		now := time.Now()
		cartridge.Status = newStatus
		cartridge.CurrentLocationID = postLocation
		cartridge.UpdatedAt = now
		if err := cartridgeRepo.Update(cartridge); err != nil {
			return err
		}

		op := uc.buildOperation(cartridge, in.Type, in.Count, postLocation, user, in.Notes, now)
		if err := operationRepo.Create(op); err != nil {
			return err
		}
		created = op
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.OperationAccepted(in.Type)
	return uc.toResponse(created, location), nil
}

// Dispose registra la operación de baja y elimina la fila del cartucho, en
// una sola transacción. La operación sobrevive al borrado: conserva el id del
// cartucho más modelo y serial desnormalizados. Un cartucho ya dado de baja
// se elimina sin duplicar la entrada de auditoría.
func (uc *UseCase) Dispose(ctx context.Context, cartridgeID, username string) error {
	user, err := uc.resolveUser(username)
	if err != nil {
		return err
	}

	disposed := false
	err = uc.txRunner.Run(ctx, func(
		cartridgeRepo repository.CartridgeRepository,
		operationRepo repository.OperationRepository,
		_ repository.LocationRepository,
	) error {
		cartridge, err := cartridgeRepo.GetForUpdate(cartridgeID)
		if err != nil {
			return err
		}
		if cartridge == nil {
			return domain.ErrCartridgeNotFound
		}

		if cartridge.Status != entity.StatusDisposed {
			if err := domlifecycle.Validate(cartridge.Status, entity.OpDisposal); err != nil {
				return err
			}
			newStatus, postLocation := domlifecycle.PostState(entity.OpDisposal, nil)
			cartridge.Status = newStatus
			cartridge.CurrentLocationID = postLocation
			op := uc.buildOperation(cartridge, entity.OpDisposal, 1, nil, user,
				"Baja del cartucho del sistema", time.Now())
			if err := operationRepo.Create(op); err != nil {
				return err
			}
			disposed = true
		}
		return cartridgeRepo.Delete(cartridgeID)
	})
	if err != nil {
		return err
	}

	if disposed {
		uc.metrics.OperationAccepted(entity.OpDisposal)
	}
	return nil
}

// InferredChange edición directa ya confirmada sobre la que hay que inferir
// la operación de auditoría. Cartridge lleva el estado nuevo aplicado.
type InferredChange struct {
	Cartridge   *entity.Cartridge
	OldStatus   string
	OldLocation *entity.Location
	NewLocation *entity.Location
}

// LogInferred deriva la operación implícita en una edición directa y la
// escribe saltando validación y mutación: el estado ya fue aplicado por el
// editor. La escritura es best-effort: un fallo se registra en el log y en
// métricas pero nunca se propaga, porque la mutación primaria ya está
// confirmada y no debe deshacerse por un fallo de auditoría.
func (uc *UseCase) LogInferred(ch InferredChange, user *entity.User) (*dto.OperationResponse, string) {
	opType, notes, ok := uc.inferOperation(ch)
	if !ok {
		return nil, dto.AuditNone
	}

	op := uc.buildOperation(ch.Cartridge, opType, 1, ch.Cartridge.CurrentLocationID, user, notes, time.Now())
	if err := uc.operationRepo.Create(op); err != nil {
		log.Error().Err(err).
			Str("cartridge_id", ch.Cartridge.ID).
			Str("type", opType).
			Msg("fallo al registrar la operación inferida; la edición del cartucho ya está confirmada")
		uc.metrics.AuditWriteFailed()
		return nil, dto.AuditFailed
	}

	uc.metrics.OperationAccepted(opType)
	return uc.toResponse(op, ch.NewLocation), dto.AuditLogged
}

// inferOperation decide tipo y notas de la operación implícita. Primero el
// cambio de estado; el cambio de ubicación solo se evalúa si el estado no
// cambió, para no duplicar el registro de un mismo evento físico.
func (uc *UseCase) inferOperation(ch InferredChange) (opType, notes string, ok bool) {
	newStatus := ch.Cartridge.Status
	if ch.OldStatus != newStatus {
		opType, ok = domlifecycle.InferStatusChange(ch.OldStatus, newStatus)
		if !ok {
			return "", "", false
		}
		notes = fmt.Sprintf("Cambio de estado de %s a %s",
			entity.StatusDescription(ch.OldStatus), entity.StatusDescription(newStatus))
		return opType, notes, true
	}

	if !sameLocation(ch.OldLocation, ch.NewLocation) {
		opType, ok = domlifecycle.InferRelocation(newStatus)
		if !ok {
			return "", "", false
		}
		notes = "Traslado del cartucho"
		if ch.OldLocation != nil {
			notes += " de " + ch.OldLocation.Name
		}
		if ch.NewLocation != nil {
			notes += " a " + ch.NewLocation.Name
		}
		return opType, notes, true
	}

	return "", "", false
}

func (uc *UseCase) resolveUser(username string) (*entity.User, error) {
	user, err := uc.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (uc *UseCase) buildOperation(
	cartridge *entity.Cartridge,
	opType string, count int,
	locationID *string,
	user *entity.User,
	notes string,
	now time.Time,
) *entity.Operation {
	return &entity.Operation{
		ID:              uuid.New().String(),
		Type:            opType,
		Count:           count,
		CartridgeID:     cartridge.ID,
		CartridgeModel:  cartridge.Model,
		CartridgeSerial: cartridge.SerialNumber,
		LocationID:      locationID,
		PerformedByID:   user.ID,
		PerformedBy:     user.Username,
		OperationDate:   now,
		Notes:           notes,
	}
}

func (uc *UseCase) toResponse(op *entity.Operation, location *entity.Location) *dto.OperationResponse {
	resp := &dto.OperationResponse{
		ID:              op.ID,
		Type:            op.Type,
		Count:           op.Count,
		CartridgeID:     op.CartridgeID,
		CartridgeModel:  op.CartridgeModel,
		CartridgeSerial: op.CartridgeSerial,
		LocationID:      op.LocationID,
		PerformedByID:   op.PerformedByID,
		PerformedBy:     op.PerformedBy,
		OperationDate:   op.OperationDate,
		Notes:           op.Notes,
	}
	if op.LocationID != nil && location != nil && location.ID == *op.LocationID {
		resp.LocationName = location.Name
	}
	return resp
}

func sameLocation(a, b *entity.Location) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID
}
