package appointment

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/lavarapido/wash-scheduler/internal/domain/appointment"
	"github.com/lavarapido/wash-scheduler/internal/dto"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type ListInput struct {
	Status   []string
	DateFrom string
	DateTo   string
	UserID   *uuid.UUID // considerado apenas para admin
	Page     int
	PageSize int
}

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	caller domain.Caller,
	in ListInput,
) ([]dto.AppointmentListDTO, dto.Pagination, error) {

	filters := domain.ListFilters{
		Status:   in.Status,
		DateFrom: in.DateFrom,
		DateTo:   in.DateTo,
		Page:     in.Page,
		PageSize: in.PageSize,
		IsAdmin:  caller.IsAdmin(),
	}

	// Cliente só enxerga os próprios agendamentos.
	if caller.IsAdmin() {
		filters.UserID = in.UserID
	} else {
		userID := caller.ID
		filters.UserID = &userID
	}

	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = defaultPageSize
	}
	if filters.PageSize > maxPageSize {
		filters.PageSize = maxPageSize
	}

	apps, total, err := uc.repo.List(ctx, filters)
	if err != nil {
		return nil, dto.Pagination{}, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(apps))
	for _, ap := range apps {
		out = append(out, dto.NewAppointmentListDTO(ap, filters.IsAdmin))
	}

	return out, dto.NewPagination(filters.Page, filters.PageSize, total), nil
}
