package risk

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/financebi-api/internal/domain"
	"github.com/jhoicas/financebi-api/internal/domain/entity"
)

// StatusFilter filtro por estado de la vista de clientes.
type StatusFilter string

const (
	FilterAll        StatusFilter = "all"
	FilterCurrent    StatusFilter = StatusFilter(entity.StatusCurrent)
	FilterDelinquent StatusFilter = StatusFilter(entity.StatusDelinquent)
)

// ParseStatusFilter interpreta el parámetro de consulta; vacío equivale a "all".
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch f := StatusFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterCurrent, FilterDelinquent:
		return f, nil
	}
	return "", fmt.Errorf("%w: filtro de estado %q", domain.ErrInvalidInput, s)
}

func (f StatusFilter) matches(c entity.Client) bool {
	return f == FilterAll || string(f) == string(c.Status)
}

// FilterClients aplica búsqueda por nombre o empresa (subcadena, sin distinguir
// mayúsculas) y filtro de estado, ambos en AND. Sin coincidencias devuelve un slice vacío.
func FilterClients(clients []entity.Client, searchTerm string, status StatusFilter) []entity.Client {
	folder := cases.Fold()
	term := folder.String(searchTerm)

	out := make([]entity.Client, 0, len(clients))
	for _, c := range clients {
		if !status.matches(c) {
			continue
		}
		if term != "" &&
			!strings.Contains(folder.String(c.Name), term) &&
			!strings.Contains(folder.String(c.Company), term) {
			continue
		}
		out = append(out, c)
	}
	return out
}
