package clients

import (
	"context"
	"fmt"

	"github.com/jhoicas/financebi-api/internal/application/dto"
	"github.com/jhoicas/financebi-api/internal/domain"
	"github.com/jhoicas/financebi-api/internal/domain/entity"
	"github.com/jhoicas/financebi-api/internal/domain/repository"
	"github.com/jhoicas/financebi-api/internal/domain/risk"
	"github.com/jhoicas/financebi-api/pkg/money"
)

// ClientUseCase consulta de la cartera (vista de clientes).
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// List aplica búsqueda y filtro de estado sobre el snapshot actual.
func (uc *ClientUseCase) List(ctx context.Context, in dto.ClientListRequest) (*dto.ClientListResponse, error) {
	status, err := risk.ParseStatusFilter(in.Status)
	if err != nil {
		return nil, err
	}
	all, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar clientes: %w", err)
	}

	filtered := risk.FilterClients(all, in.Search, status)
	out := make([]dto.ClientDTO, len(filtered))
	for i, c := range filtered {
		out[i] = ToClientDTO(c)
	}
	return &dto.ClientListResponse{
		Count:   len(out),
		Search:  in.Search,
		Status:  string(status),
		Clients: out,
	}, nil
}

// GetByID obtiene un cliente o ErrNotFound.
func (uc *ClientUseCase) GetByID(ctx context.Context, id string) (*dto.ClientDTO, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	out := ToClientDTO(*c)
	return &out, nil
}

// ToClientDTO mapea la entidad a su representación de salida.
func ToClientDTO(c entity.Client) dto.ClientDTO {
	history := make([]dto.PaymentRecordDTO, len(c.History))
	for i, h := range c.History {
		history[i] = dto.PaymentRecordDTO{Month: h.Month, Status: string(h.Status), Value: h.Value}
	}
	return dto.ClientDTO{
		ID:               c.ID,
		Name:             c.Name,
		Company:          c.Company,
		Email:            c.Email,
		Phone:            c.Phone,
		Status:           string(c.Status),
		TotalBalance:     c.TotalBalance,
		OverdueAmount:    c.OverdueAmount,
		OverdueFormatted: money.FormatBRL(c.OverdueAmount),
		DaysOverdue:      c.DaysOverdue,
		History:          history,
		LastUpdate:       c.LastUpdate,
	}
}
