package mockdata_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/financebi-api/internal/domain/entity"
	"github.com/jhoicas/financebi-api/internal/infrastructure/mockdata"
)

func TestSimulatedRefresher_ProbabilidadCeroSoloActualizaFecha(t *testing.T) {
	in := mockdata.NewGenerator(1).Clients(20)
	later := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	out, err := mockdata.NewSimulatedRefresher(1, 0).
		WithClock(func() time.Time { return later }).
		Refresh(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, out, 20)
	for i := range in {
		assert.Equal(t, in[i].Status, out[i].Status)
		assert.True(t, in[i].OverdueAmount.Equal(out[i].OverdueAmount))
		assert.Equal(t, later, out[i].LastUpdate)
		assert.NotEqual(t, later, in[i].LastUpdate, "la entrada no se modifica")
	}
}

func TestSimulatedRefresher_ProbabilidadUnoInvierteTodo(t *testing.T) {
	in := mockdata.NewGenerator(2).Clients(16)

	out, err := mockdata.NewSimulatedRefresher(2, 1).Refresh(context.Background(), in)
	require.NoError(t, err)

	for i := range in {
		assert.NotEqual(t, in[i].Status, out[i].Status, in[i].ID)
	}
	require.NoError(t, entity.ValidateAll(out), "el invariante de mora se mantiene tras invertir")
}

func TestSimulatedRefresher_InvarianteConProbabilidadIntermedia(t *testing.T) {
	r := mockdata.NewSimulatedRefresher(3, 0.2)
	clients := mockdata.NewGenerator(3).Clients(mockdata.DefaultSize)
	for round := 0; round < 10; round++ {
		var err error
		clients, err = r.Refresh(context.Background(), clients)
		require.NoError(t, err)
		require.NoError(t, entity.ValidateAll(clients), "ronda %d", round)
		assert.Len(t, clients, mockdata.DefaultSize)
	}
}

func TestSimulatedRefresher_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := mockdata.NewSimulatedRefresher(4, 0.5).Refresh(ctx, mockdata.NewGenerator(4).Clients(3))
	assert.ErrorIs(t, err, context.Canceled)
}
