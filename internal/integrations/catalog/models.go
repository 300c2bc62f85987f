package catalog

import "github.com/m04kA/SMC-SalonBooking/internal/domain"

// ServiceResponse услуга в ответе каталога
type ServiceResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
	IsActive        bool    `json:"is_active"`
}

func (s *ServiceResponse) toDomain() *domain.Service {
	return &domain.Service{
		ID:              s.ID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		Active:          s.IsActive,
	}
}

// StaffResponse сотрудник в ответе справочника
type StaffResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (s *StaffResponse) toDomain() *domain.Staff {
	return &domain.Staff{ID: s.ID, Name: s.Name}
}
