// Package analytics contiene los casos de uso de indicadores para el Dashboard de RR. HH.
package analytics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/hr-erp-api/internal/application/dto"
	"github.com/jhoicas/hr-erp-api/internal/domain/entity"
	"github.com/jhoicas/hr-erp-api/internal/domain/repository"
)

const (
	dashboardRecentLeaves = 5  // solicitudes en el widget de últimos permisos
	dashboardTrendDays    = 7  // días de la tendencia de asistencia, hoy incluido
	dashboardHireWindow   = 30 // días para "contrataciones recientes"
)

// DashboardUseCase genera los indicadores del día.
//
// Solo lectura: delega cada conteo en los repositorios y los ejecuta en paralelo.
type DashboardUseCase struct {
	employees   repository.EmployeeRepository
	departments repository.DepartmentRepository
	leaves      repository.LeaveRepository
	attendance  repository.AttendanceRepository
	loc         *time.Location
	now         func() time.Time
}

// NewDashboardUseCase construye el caso de uso. loc define el "hoy" de los conteos.
func NewDashboardUseCase(
	employees repository.EmployeeRepository,
	departments repository.DepartmentRepository,
	leaves repository.LeaveRepository,
	attendance repository.AttendanceRepository,
	loc *time.Location,
) *DashboardUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardUseCase{
		employees:   employees,
		departments: departments,
		leaves:      leaves,
		attendance:  attendance,
		loc:         loc,
		now:         time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetStats construye el DashboardStatsResponse.
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	today := entity.DateOf(uc.now(), uc.loc)
	active := entity.EmployeeActive

	var (
		out      dto.DashboardStatsResponse
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	run := func(label string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("dashboard: %s: %w", label, err)
				}
				mu.Unlock()
			}
		}()
	}

	// Cada goroutine escribe un campo distinto de out.
	run("total de empleados", func() (err error) {
		out.Stats.TotalEmployees, err = uc.employees.Count(ctx, nil)
		return
	})
	run("empleados activos", func() (err error) {
		out.Stats.ActiveEmployees, err = uc.employees.Count(ctx, &active)
		return
	})
	run("permisos pendientes", func() (err error) {
		out.Stats.PendingLeaves, err = uc.leaves.CountByStatus(ctx, entity.LeavePending)
		return
	})
	run("contrataciones recientes", func() (err error) {
		out.Stats.RecentHires, err = uc.employees.CountHiredSince(ctx, today.AddDays(-dashboardHireWindow))
		return
	})
	run("empleados por departamento", func() error {
		counts, err := uc.departments.Headcount(ctx)
		if err != nil {
			return err
		}
		out.Stats.TotalDepartments = len(counts)
		out.EmployeesByDept = make([]dto.DepartmentCount, 0, len(counts))
		for _, h := range counts {
			out.EmployeesByDept = append(out.EmployeesByDept, dto.DepartmentCount{Name: h.Name, Count: h.Count})
		}
		return nil
	})
	run("tendencia de asistencia", func() error {
		trend := make([]dto.AttendanceDayStat, 0, dashboardTrendDays)
		for i := dashboardTrendDays - 1; i >= 0; i-- {
			day := today.AddDays(-i)
			n, err := uc.attendance.CountPresent(ctx, day)
			if err != nil {
				return err
			}
			trend = append(trend, dto.AttendanceDayStat{Date: day.String(), Count: n})
		}
		out.AttendanceTrend = trend
		out.Stats.TodayPresent = trend[len(trend)-1].Count
		return nil
	})
	run("últimos permisos", func() error {
		recent, err := uc.leaves.Recent(ctx, dashboardRecentLeaves)
		if err != nil {
			return err
		}
		out.RecentLeaves = dto.FromLeaveList(recent)
		return nil
	})

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return &out, nil
}
