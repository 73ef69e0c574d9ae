// seed_clients genera un script SQL con la cartera de demostración
// (mismos datos que la API usa al arrancar en memoria).
//
// Uso: go run ./cmd/seed_clients [cantidad] [semilla]
// Por defecto 55 clientes con semilla 42.
// Escribe: internal/infrastructure/postgres/seed_clients.sql
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/financebi-api/internal/domain/entity"
	"github.com/jhoicas/financebi-api/internal/infrastructure/mockdata"
)

func main() {
	count := mockdata.DefaultSize
	seed := int64(42)
	if len(os.Args) > 1 {
		n, err := strconv.Atoi(os.Args[1])
		if err != nil || n < 0 {
			fmt.Fprintf(os.Stderr, "Cantidad inválida: %q\n", os.Args[1])
			os.Exit(1)
		}
		count = n
	}
	if len(os.Args) > 2 {
		s, err := strconv.ParseInt(os.Args[2], 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Semilla inválida: %q\n", os.Args[2])
			os.Exit(1)
		}
		seed = s
	}

	clients := mockdata.NewGenerator(seed).Clients(count)
	if err := entity.ValidateAll(clients); err != nil {
		fmt.Fprintf(os.Stderr, "Cartera inválida: %v\n", err)
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "seed_clients.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	fmt.Fprintf(out, "-- Cartera de demostración: %d clientes, semilla %d\n", len(clients), seed)
	out.WriteString("-- Generado por cmd/seed_clients\n\n")
	out.WriteString("BEGIN;\n")
	out.WriteString("DELETE FROM clients;\n\n")

	for i, c := range clients {
		history, err := json.Marshal(c.History)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Histórico de %s: %v\n", c.ID, err)
			os.Exit(1)
		}
		fmt.Fprintf(out, "INSERT INTO clients (id, position, name, company, email, phone, status, total_balance, overdue_amount, days_overdue, history, last_update)\n")
		fmt.Fprintf(out, "VALUES ('%s', %d, '%s', '%s', '%s', '%s', '%s', %s, %s, %d, '%s'::jsonb, '%s');\n",
			escapeSQL(c.ID), i,
			escapeSQL(c.Name), escapeSQL(c.Company),
			escapeSQL(c.Email), escapeSQL(c.Phone),
			c.Status,
			c.TotalBalance.StringFixed(2), c.OverdueAmount.StringFixed(2),
			c.DaysOverdue,
			escapeSQL(string(history)),
			c.LastUpdate.UTC().Format(time.RFC3339))
	}
	out.WriteString("\nCOMMIT;\n")

	delinquent := 0
	for _, c := range clients {
		if c.IsDelinquent() {
			delinquent++
		}
	}
	fmt.Printf("Generado %s: %d clientes, %d inadimplentes\n", outPath, len(clients), delinquent)
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
