package dto

// DashboardStatsResponse respuesta de GET /api/dashboard/stats.
type DashboardStatsResponse struct {
	Stats           DashboardCounters   `json:"stats"`
	EmployeesByDept []DepartmentCount   `json:"employeesByDept"`
	AttendanceTrend []AttendanceDayStat `json:"attendanceTrend"`
	RecentLeaves    []LeaveResponse     `json:"recentLeaves"`
}

// DashboardCounters KPIs del día.
type DashboardCounters struct {
	TotalEmployees   int `json:"totalEmployees"`
	ActiveEmployees  int `json:"activeEmployees"`
	TotalDepartments int `json:"totalDepartments"`
	PendingLeaves    int `json:"pendingLeaves"`
	TodayPresent     int `json:"todayPresent"`
	RecentHires      int `json:"recentHires"` // últimos 30 días
}

// DepartmentCount empleados por departamento.
type DepartmentCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// AttendanceDayStat presentes (PRESENT o LATE) en un día.
type AttendanceDayStat struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}
