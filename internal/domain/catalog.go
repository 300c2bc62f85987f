package domain

import "time"

// Service услуга из внешнего каталога. Ядро использует только длительность, цену и признак активности
type Service struct {
	ID              string
	Name            string
	DurationMinutes int
	Price           float64
	Active          bool
}

// Duration длительность услуги
func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// Staff сотрудник салона. В расписании это только метка на записи
type Staff struct {
	ID   string
	Name string
}
