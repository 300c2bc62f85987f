package catalog

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Static каталог, заданный в конфигурации. Используется без внешнего сервиса каталога
type Static struct {
	services map[string]domain.Service
	staff    map[string]domain.Staff
}

// NewStatic создает каталог из списков услуг и сотрудников
func NewStatic(services []domain.Service, staff []domain.Staff) *Static {
	s := &Static{
		services: make(map[string]domain.Service, len(services)),
		staff:    make(map[string]domain.Staff, len(staff)),
	}
	for _, svc := range services {
		s.services[svc.ID] = svc
	}
	for _, st := range staff {
		s.staff[st.ID] = st
	}
	return s
}

func (s *Static) GetService(_ context.Context, serviceID string) (*domain.Service, error) {
	svc, ok := s.services[serviceID]
	if !ok {
		return nil, ErrServiceNotFound
	}
	return &svc, nil
}

func (s *Static) GetStaff(_ context.Context, staffID string) (*domain.Staff, error) {
	st, ok := s.staff[staffID]
	if !ok {
		return nil, ErrStaffNotFound
	}
	return &st, nil
}
