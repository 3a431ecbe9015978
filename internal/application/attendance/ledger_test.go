package attendance_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/hr-erp-api/internal/application/attendance"
	"github.com/jhoicas/hr-erp-api/internal/domain"
	"github.com/jhoicas/hr-erp-api/internal/domain/entity"
	"github.com/jhoicas/hr-erp-api/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bogota = time.FixedZone("COT", -5*60*60)

func newLedger(t *testing.T) (*attendance.Ledger, *memory.Store, string) {
	t.Helper()
	store := memory.NewStore()
	emp := &entity.Employee{
		ID:        uuid.New().String(),
		FirstName: "Jane",
		LastName:  "Smith",
		Email:     "jane@example.com",
		Position:  "Frontend Developer",
		HireDate:  entity.Date{Year: 2022, Month: time.May, Day: 2},
		Status:    entity.EmployeeActive,
	}
	require.NoError(t, store.Employees().Create(context.Background(), emp))
	return attendance.NewLedger(store.Attendance(), bogota, attendance.DefaultLateHour), store, emp.ID
}

func at(hour, min int) time.Time {
	return time.Date(2024, time.March, 11, hour, min, 0, 0, bogota)
}

func TestCheckIn_LimiteDeTardanza(t *testing.T) {
	ctx := context.Background()

	l, _, emp := newLedger(t)
	rec, err := l.CheckInAt(ctx, emp, at(8, 59))
	require.NoError(t, err)
	assert.Equal(t, entity.AttendancePresent, rec.Status)

	l2, _, emp2 := newLedger(t)
	rec, err = l2.CheckInAt(ctx, emp2, at(9, 0))
	require.NoError(t, err)
	assert.Equal(t, entity.AttendanceLate, rec.Status)
}

func TestCheckIn_FechaEnLaZonaDelLedger(t *testing.T) {
	l, _, emp := newLedger(t)
	// 03:00 UTC del 10 de marzo son las 22:00 del 9 en Bogotá.
	rec, err := l.CheckInAt(context.Background(), emp, time.Date(2024, time.March, 10, 3, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, entity.Date{Year: 2024, Month: time.March, Day: 9}, rec.Date)
	assert.Equal(t, entity.AttendanceLate, rec.Status)
}

func TestCheckIn_IncluyeResumenDelEmpleado(t *testing.T) {
	l, _, emp := newLedger(t)
	rec, err := l.CheckInAt(context.Background(), emp, at(8, 30))
	require.NoError(t, err)
	require.NotNil(t, rec.Employee)
	assert.Equal(t, "Jane", rec.Employee.FirstName)
	assert.Equal(t, emp, rec.Employee.ID)
}

func TestCheckIn_DuplicadoNoModificaElRegistro(t *testing.T) {
	ctx := context.Background()
	l, _, emp := newLedger(t)

	first, err := l.CheckInAt(ctx, emp, at(8, 30))
	require.NoError(t, err)

	_, err = l.CheckInAt(ctx, emp, at(10, 0))
	require.ErrorIs(t, err, domain.ErrAlreadyCheckedIn)

	list, err := l.Query(ctx, entity.AttendanceFilter{EmployeeID: emp})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, first.ID, list[0].ID)
	assert.True(t, list[0].CheckIn.Equal(at(8, 30)))
	assert.Equal(t, entity.AttendancePresent, list[0].Status)
}

func TestCheckIn_ConcurrenteSoloUnoGana(t *testing.T) {
	ctx := context.Background()
	l, _, emp := newLedger(t)

	const workers = 50
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		dupes     int
	)
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			_, err := l.CheckInAt(ctx, emp, at(8, i%60))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case assert.ErrorIs(t, err, domain.ErrAlreadyCheckedIn):
				dupes++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, dupes)

	list, err := l.Query(ctx, entity.AttendanceFilter{EmployeeID: emp})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCheckIn_EmpleadoInexistente(t *testing.T) {
	l, _, _ := newLedger(t)
	_, err := l.CheckInAt(context.Background(), uuid.New().String(), at(8, 0))
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
}

func TestCheckIn_IDDeEmpleadoInvalido(t *testing.T) {
	l, _, _ := newLedger(t)
	_, err := l.CheckInAt(context.Background(), "", at(8, 0))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = l.CheckInAt(context.Background(), "42", at(8, 0))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCheckOut_SinCheckIn(t *testing.T) {
	l, _, emp := newLedger(t)
	_, err := l.CheckOutAt(context.Background(), emp, at(17, 0))
	assert.ErrorIs(t, err, domain.ErrNotCheckedIn)
}

func TestCheckOut_RepetidoSobrescribe(t *testing.T) {
	ctx := context.Background()
	l, _, emp := newLedger(t)

	_, err := l.CheckInAt(ctx, emp, at(8, 30))
	require.NoError(t, err)

	rec, err := l.CheckOutAt(ctx, emp, at(17, 10))
	require.NoError(t, err)
	require.NotNil(t, rec.CheckOut)
	assert.True(t, rec.CheckOut.Equal(at(17, 10)))
	assert.True(t, rec.CheckedOut())

	rec, err = l.CheckOutAt(ctx, emp, at(18, 5))
	require.NoError(t, err)
	assert.True(t, rec.CheckOut.Equal(at(18, 5)))
	assert.True(t, rec.CheckIn.Equal(at(8, 30)))
}

func TestCheckOut_OtroDiaSinEntrada(t *testing.T) {
	ctx := context.Background()
	l, _, emp := newLedger(t)

	_, err := l.CheckInAt(ctx, emp, at(8, 30))
	require.NoError(t, err)

	_, err = l.CheckOutAt(ctx, emp, at(8, 30).Add(24*time.Hour))
	assert.ErrorIs(t, err, domain.ErrNotCheckedIn)
}

func TestUpsert_CreaConPresentPorDefecto(t *testing.T) {
	l, _, emp := newLedger(t)
	l.WithClock(func() time.Time { return at(12, 0) })

	day := entity.Date{Year: 2024, Month: time.March, Day: 4}
	rec, err := l.Upsert(context.Background(), attendance.UpsertInput{EmployeeID: emp, Date: day})
	require.NoError(t, err)
	assert.Equal(t, entity.AttendancePresent, rec.Status)
	assert.Equal(t, day, rec.Date)
	assert.Nil(t, rec.CheckIn)
	assert.Nil(t, rec.CheckOut)
}

func TestUpsert_MezclaSoloCamposPresentes(t *testing.T) {
	ctx := context.Background()
	l, _, emp := newLedger(t)

	_, err := l.CheckInAt(ctx, emp, at(9, 15))
	require.NoError(t, err)

	absent := entity.AttendanceAbsent
	notes := "cita médica"
	rec, err := l.Upsert(ctx, attendance.UpsertInput{
		EmployeeID: emp,
		Date:       entity.DateOf(at(0, 0), bogota),
		Status:     &absent,
		Notes:      &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.AttendanceAbsent, rec.Status)
	require.NotNil(t, rec.Notes)
	assert.Equal(t, notes, *rec.Notes)
	require.NotNil(t, rec.CheckIn)
	assert.True(t, rec.CheckIn.Equal(at(9, 15)))

	// Sin estado en el patch, se conserva el actual.
	out := at(16, 0)
	rec, err = l.Upsert(ctx, attendance.UpsertInput{EmployeeID: emp, Date: rec.Date, CheckOut: &out})
	require.NoError(t, err)
	assert.Equal(t, entity.AttendanceAbsent, rec.Status)
	assert.True(t, rec.CheckOut.Equal(out))
}

func TestUpsert_SalidaAntesDeEntradaSeAcepta(t *testing.T) {
	l, _, emp := newLedger(t)
	in, out := at(17, 0), at(8, 0)
	rec, err := l.Upsert(context.Background(), attendance.UpsertInput{
		EmployeeID: emp,
		Date:       entity.DateOf(in, bogota),
		CheckIn:    &in,
		CheckOut:   &out,
	})
	require.NoError(t, err)
	assert.True(t, rec.CheckOut.Before(*rec.CheckIn))
}

func TestUpsert_Validacion(t *testing.T) {
	l, _, emp := newLedger(t)
	_, err := l.Upsert(context.Background(), attendance.UpsertInput{EmployeeID: emp})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = l.Upsert(context.Background(), attendance.UpsertInput{
		EmployeeID: uuid.New().String(),
		Date:       entity.Date{Year: 2024, Month: time.March, Day: 4},
	})
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
}

func TestQuery_OrdenYFiltros(t *testing.T) {
	ctx := context.Background()
	l, store, jane := newLedger(t)

	john := &entity.Employee{ID: uuid.New().String(), FirstName: "John", LastName: "Doe", Status: entity.EmployeeActive}
	require.NoError(t, store.Employees().Create(ctx, john))

	_, err := l.CheckInAt(ctx, jane, at(8, 0))
	require.NoError(t, err)
	_, err = l.CheckInAt(ctx, john.ID, at(9, 30))
	require.NoError(t, err)
	_, err = l.CheckInAt(ctx, jane, at(8, 0).Add(-24*time.Hour))
	require.NoError(t, err)

	all, err := l.Query(ctx, entity.AttendanceFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, john.ID, all[0].EmployeeID) // mismo día, entrada más tardía primero
	assert.Equal(t, jane, all[1].EmployeeID)
	assert.True(t, all[2].Date.Before(all[1].Date))

	today := entity.DateOf(at(0, 0), bogota)
	yesterday := today.AddDays(-1)

	byDate, err := l.Query(ctx, entity.AttendanceFilter{Date: &today, From: &yesterday, To: &yesterday})
	require.NoError(t, err)
	assert.Len(t, byDate, 2, "la fecha exacta tiene prioridad sobre el rango")

	ranged, err := l.Query(ctx, entity.AttendanceFilter{EmployeeID: jane, From: &yesterday, To: &today})
	require.NoError(t, err)
	assert.Len(t, ranged, 2)
}

func TestQuery_RangoInvalido(t *testing.T) {
	l, _, _ := newLedger(t)
	from := entity.Date{Year: 2024, Month: time.March, Day: 10}
	to := from.AddDays(-1)

	_, err := l.Query(context.Background(), entity.AttendanceFilter{From: &from, To: &to})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = l.Query(context.Background(), entity.AttendanceFilter{From: &from})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
