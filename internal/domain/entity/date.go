package entity

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout formato ISO-8601 de fecha de calendario.
const DateLayout = "2006-01-02"

// Date fecha de calendario (año/mes/día) sin hora ni zona horaria.
// Es la clave natural del registro de asistencia; nunca se compara como timestamp.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf devuelve la fecha de calendario de t en la zona loc.
func DateOf(t time.Time, loc *time.Location) Date {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// DateFromTime toma año/mes/día tal como vienen en t, sin convertir de zona
// (columnas DATE leídas por el driver).
func DateFromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate interpreta "YYYY-MM-DD". Acepta también un timestamp RFC 3339 y se queda con su fecha.
func ParseDate(s string) (Date, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return DateFromTime(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DateFromTime(t), nil
	}
	return Date{}, fmt.Errorf("fecha inválida %q: se espera YYYY-MM-DD", s)
}

// IsZero indica si la fecha no fue asignada.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Midnight devuelve el inicio del día en loc.
func (d Date) Midnight(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// AddDays desplaza la fecha n días (n puede ser negativo).
func (d Date) AddDays(n int) Date {
	return DateFromTime(d.Midnight(time.UTC).AddDate(0, 0, n))
}

// Compare devuelve -1, 0 o +1.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
