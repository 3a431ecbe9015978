// Package attendance contiene el ledger de asistencia: check-in, check-out, correcciones
// administrativas y consultas. Un registro por empleado y día de calendario.
package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/hr-erp-api/internal/domain"
	"github.com/jhoicas/hr-erp-api/internal/domain/entity"
	"github.com/jhoicas/hr-erp-api/internal/domain/repository"
	"github.com/rs/zerolog/log"
)

// DefaultLateHour hora local a partir de la cual un check-in se marca LATE.
const DefaultLateHour = 9

// Ledger casos de uso del registro de asistencia.
//
// Estados por (empleado, fecha): sin registro -> con entrada -> con salida. La unicidad y la
// atomicidad las garantiza el repositorio; el ledger no mantiene estado propio.
type Ledger struct {
	repo     repository.AttendanceRepository
	loc      *time.Location
	lateHour int
	now      func() time.Time
}

// NewLedger construye el ledger. loc define el día de calendario y la hora de llegada tarde.
func NewLedger(repo repository.AttendanceRepository, loc *time.Location, lateHour int) *Ledger {
	if loc == nil {
		loc = time.Local
	}
	if lateHour < 0 || lateHour > 23 {
		lateHour = DefaultLateHour
	}
	return &Ledger{repo: repo, loc: loc, lateHour: lateHour, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (l *Ledger) WithClock(now func() time.Time) *Ledger {
	l.now = now
	return l
}

// Location zona horaria del ledger.
func (l *Ledger) Location() *time.Location { return l.loc }

// Today fecha de calendario actual en la zona del ledger.
func (l *Ledger) Today() entity.Date { return entity.DateOf(l.now(), l.loc) }

// CheckIn registra la entrada del empleado con la hora actual.
func (l *Ledger) CheckIn(ctx context.Context, employeeID string) (*entity.AttendanceRecord, error) {
	return l.CheckInAt(ctx, employeeID, l.now())
}

// CheckInAt registra la entrada en now. Si ya hay registro para ese día devuelve
// domain.ErrAlreadyCheckedIn y el registro existente queda intacto.
func (l *Ledger) CheckInAt(ctx context.Context, employeeID string, now time.Time) (*entity.AttendanceRecord, error) {
	if err := validateEmployeeID(employeeID); err != nil {
		return nil, err
	}
	local := now.In(l.loc)
	checkIn := now
	rec := &entity.AttendanceRecord{
		ID:         uuid.New().String(),
		EmployeeID: employeeID,
		Date:       entity.DateOf(local, l.loc),
		CheckIn:    &checkIn,
		Status:     entity.StatusForCheckIn(local, l.lateHour),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := l.repo.Create(ctx, rec); err != nil {
		if errors.Is(err, domain.ErrAlreadyCheckedIn) {
			log.Debug().Str("employee_id", employeeID).Str("date", rec.Date.String()).Msg("check-in duplicado")
		}
		return nil, err
	}
	log.Info().
		Str("employee_id", employeeID).
		Str("date", rec.Date.String()).
		Str("status", string(rec.Status)).
		Msg("check-in registrado")

	// Relectura para devolver el resumen del empleado.
	stored, err := l.repo.Get(ctx, employeeID, rec.Date)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return rec, nil
	}
	return stored, nil
}

// CheckOut registra la salida del empleado con la hora actual.
func (l *Ledger) CheckOut(ctx context.Context, employeeID string) (*entity.AttendanceRecord, error) {
	return l.CheckOutAt(ctx, employeeID, l.now())
}

// CheckOutAt asigna la salida del registro del día. Sin registro devuelve domain.ErrNotCheckedIn.
// Una segunda salida sobrescribe la anterior.
func (l *Ledger) CheckOutAt(ctx context.Context, employeeID string, now time.Time) (*entity.AttendanceRecord, error) {
	if err := validateEmployeeID(employeeID); err != nil {
		return nil, err
	}
	date := entity.DateOf(now, l.loc)
	rec, err := l.repo.SetCheckOut(ctx, employeeID, date, now)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotCheckedIn
	}
	log.Info().Str("employee_id", employeeID).Str("date", date.String()).Msg("check-out registrado")
	return rec, nil
}

// UpsertInput corrección administrativa. Los punteros nil no modifican el valor existente.
type UpsertInput struct {
	EmployeeID string
	Date       entity.Date
	CheckIn    *time.Time
	CheckOut   *time.Time
	Status     *entity.AttendanceStatus
	Notes      *string
}

// Upsert crea el registro de (empleado, fecha) o mezcla los campos informados sobre el
// existente. Al crear, el estado por defecto es PRESENT.
func (l *Ledger) Upsert(ctx context.Context, in UpsertInput) (*entity.AttendanceRecord, error) {
	if err := validateEmployeeID(in.EmployeeID); err != nil {
		return nil, err
	}
	if in.Date.IsZero() {
		return nil, fmt.Errorf("%w: date es obligatoria", domain.ErrInvalidInput)
	}
	patch := entity.AttendancePatch{
		EmployeeID: in.EmployeeID,
		Date:       in.Date,
		CheckIn:    in.CheckIn,
		CheckOut:   in.CheckOut,
		Status:     in.Status,
		Notes:      in.Notes,
	}
	rec, err := l.repo.Upsert(ctx, uuid.New().String(), patch, entity.AttendancePresent, l.now())
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("employee_id", in.EmployeeID).
		Str("date", in.Date.String()).
		Str("status", string(rec.Status)).
		Msg("asistencia actualizada")
	return rec, nil
}

// Query lista registros. Una fecha exacta tiene prioridad sobre el rango; un rango necesita
// ambos extremos y From <= To.
func (l *Ledger) Query(ctx context.Context, f entity.AttendanceFilter) ([]*entity.AttendanceRecord, error) {
	if f.Date != nil {
		f.From, f.To = nil, nil
	} else {
		if (f.From == nil) != (f.To == nil) {
			return nil, fmt.Errorf("%w: el rango requiere startDate y endDate", domain.ErrInvalidInput)
		}
		if f.From != nil && f.From.After(*f.To) {
			return nil, fmt.Errorf("%w: startDate posterior a endDate", domain.ErrInvalidInput)
		}
	}
	if f.EmployeeID != "" && uuid.Validate(f.EmployeeID) != nil {
		return nil, fmt.Errorf("%w: employeeId inválido", domain.ErrInvalidInput)
	}
	return l.repo.Query(ctx, f)
}

func validateEmployeeID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: employeeId es obligatorio", domain.ErrInvalidInput)
	}
	if uuid.Validate(id) != nil {
		return fmt.Errorf("%w: employeeId inválido", domain.ErrInvalidInput)
	}
	return nil
}
