package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/hr-erp-api/internal/domain"
	"github.com/jhoicas/hr-erp-api/internal/domain/entity"
	"github.com/jhoicas/hr-erp-api/internal/domain/repository"
)

var _ repository.AttendanceRepository = (*AttendanceRepo)(nil)

// AttendanceRepo ledger de asistencia en memoria. El candado del Store hace atómico el
// par comprobación/inserción de Create.
type AttendanceRepo struct {
	s    *Store
	inTx bool
}

// Create inserta el registro si no existe otro para (EmployeeID, Date).
func (r *AttendanceRepo) Create(ctx context.Context, rec *entity.AttendanceRecord) error {
	defer r.s.lock(r.inTx)()
	if _, ok := r.s.employees[rec.EmployeeID]; !ok {
		return domain.ErrEmployeeNotFound
	}
	key := attendanceKey{employeeID: rec.EmployeeID, date: rec.Date}
	if _, exists := r.s.attendance[key]; exists {
		return domain.ErrAlreadyCheckedIn
	}
	r.s.attendance[key] = copyRecord(rec)
	return nil
}

// SetCheckOut asigna la salida; (nil, nil) si no hay registro.
func (r *AttendanceRepo) SetCheckOut(ctx context.Context, employeeID string, date entity.Date, checkOut time.Time) (*entity.AttendanceRecord, error) {
	defer r.s.lock(r.inTx)()
	key := attendanceKey{employeeID: employeeID, date: date}
	rec, ok := r.s.attendance[key]
	if !ok {
		return nil, nil
	}
	rec.CheckOut = &checkOut
	rec.UpdatedAt = checkOut
	r.s.attendance[key] = rec
	return r.withEmployee(rec), nil
}

// Upsert crea o mezcla bajo el mismo candado.
func (r *AttendanceRepo) Upsert(ctx context.Context, newID string, patch entity.AttendancePatch, defaultStatus entity.AttendanceStatus, now time.Time) (*entity.AttendanceRecord, error) {
	defer r.s.lock(r.inTx)()
	if _, ok := r.s.employees[patch.EmployeeID]; !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	key := attendanceKey{employeeID: patch.EmployeeID, date: patch.Date}
	rec, ok := r.s.attendance[key]
	if !ok {
		rec = entity.AttendanceRecord{
			ID:         newID,
			EmployeeID: patch.EmployeeID,
			Date:       patch.Date,
			Status:     defaultStatus,
			CreatedAt:  now,
		}
	}
	patch.Apply(&rec)
	rec.UpdatedAt = now
	r.s.attendance[key] = rec
	return r.withEmployee(rec), nil
}

// Get obtiene el registro de (employeeID, date); (nil, nil) si no existe.
func (r *AttendanceRepo) Get(ctx context.Context, employeeID string, date entity.Date) (*entity.AttendanceRecord, error) {
	defer r.s.rlock(r.inTx)()
	rec, ok := r.s.attendance[attendanceKey{employeeID: employeeID, date: date}]
	if !ok {
		return nil, nil
	}
	return r.withEmployee(rec), nil
}

// Query filtra y ordena por fecha desc, entrada desc (sin entrada al final).
func (r *AttendanceRepo) Query(ctx context.Context, f entity.AttendanceFilter) ([]*entity.AttendanceRecord, error) {
	defer r.s.rlock(r.inTx)()
	list := make([]*entity.AttendanceRecord, 0)
	for _, rec := range r.s.attendance {
		if f.Matches(&rec) {
			list = append(list, r.withEmployee(rec))
		}
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if c := a.Date.Compare(b.Date); c != 0 {
			return c > 0
		}
		switch {
		case a.CheckIn == nil && b.CheckIn == nil:
			return a.ID < b.ID
		case a.CheckIn == nil:
			return false
		case b.CheckIn == nil:
			return true
		case !a.CheckIn.Equal(*b.CheckIn):
			return a.CheckIn.After(*b.CheckIn)
		default:
			return a.ID < b.ID
		}
	})
	return list, nil
}

// CountPresent registros PRESENT o LATE en la fecha.
func (r *AttendanceRepo) CountPresent(ctx context.Context, date entity.Date) (int, error) {
	defer r.s.rlock(r.inTx)()
	n := 0
	for k, rec := range r.s.attendance {
		if k.date == date && (rec.Status == entity.AttendancePresent || rec.Status == entity.AttendanceLate) {
			n++
		}
	}
	return n, nil
}

func (r *AttendanceRepo) withEmployee(rec entity.AttendanceRecord) *entity.AttendanceRecord {
	out := copyRecord(&rec)
	if e, ok := r.s.employees[rec.EmployeeID]; ok {
		out.Employee = e.Summary()
	}
	return &out
}

func copyRecord(rec *entity.AttendanceRecord) entity.AttendanceRecord {
	out := *rec
	if rec.CheckIn != nil {
		v := *rec.CheckIn
		out.CheckIn = &v
	}
	if rec.CheckOut != nil {
		v := *rec.CheckOut
		out.CheckOut = &v
	}
	out.Notes = cloneString(rec.Notes)
	out.Employee = nil
	return out
}
