package clients_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/financebi-api/internal/application/clients"
	"github.com/jhoicas/financebi-api/internal/application/dto"
	"github.com/jhoicas/financebi-api/internal/domain"
	"github.com/jhoicas/financebi-api/internal/infrastructure/memory"
	"github.com/jhoicas/financebi-api/internal/infrastructure/mockdata"
)

func newUseCase() *clients.ClientUseCase {
	return clients.NewClientUseCase(memory.NewClientRepository(mockdata.NewGenerator(42).Clients(mockdata.DefaultSize)))
}

func TestList_SinFiltros(t *testing.T) {
	out, err := newUseCase().List(context.Background(), dto.ClientListRequest{})
	require.NoError(t, err)

	assert.Equal(t, 55, out.Count)
	assert.Len(t, out.Clients, 55)
	assert.Equal(t, "all", out.Status)
	assert.Equal(t, "cl-1", out.Clients[0].ID)
}

func TestList_BusquedaYEstado(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	out, err := uc.List(ctx, dto.ClientListRequest{Status: "delinquent"})
	require.NoError(t, err)
	assert.Equal(t, 14, out.Count)
	for _, c := range out.Clients {
		assert.Equal(t, "delinquent", c.Status)
		assert.True(t, c.OverdueAmount.IsPositive())
	}

	// "Tech Innovators" es la empresa de los índices múltiplos de 8
	out, err = uc.List(ctx, dto.ClientListRequest{Search: "tech"})
	require.NoError(t, err)
	assert.Equal(t, 7, out.Count)

	out, err = uc.List(ctx, dto.ClientListRequest{Search: "tech", Status: "current"})
	require.NoError(t, err)
	assert.Equal(t, 0, out.Count, "todos los Tech Innovators caen en índices múltiplos de 4")
	assert.NotNil(t, out.Clients)
}

func TestList_EstadoInvalido(t *testing.T) {
	_, err := newUseCase().List(context.Background(), dto.ClientListRequest{Status: "moroso"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetByID(t *testing.T) {
	uc := newUseCase()

	c, err := uc.GetByID(context.Background(), "cl-1")
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", c.Name)
	assert.Len(t, c.History, 6)
	assert.NotEmpty(t, c.OverdueFormatted)

	_, err = uc.GetByID(context.Background(), "cl-999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
