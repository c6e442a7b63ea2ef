// Package lifecycle define las transiciones de estado de lotes y pedidos
// (servicio de dominio puro, sin persistencia).
//
//	lote global / error:  recopilando -> en_produccion -> entregado_club
//	envío individual:     recopilando -> en_produccion -> entregado_cliente
package lifecycle

import (
	"fmt"

	"github.com/jhoicas/clubmerch-api/internal/domain"
	"github.com/jhoicas/clubmerch-api/internal/domain/entity"
)

// Sequence devuelve la secuencia de estados del tipo de lote.
func Sequence(batchType string) []string {
	final := entity.StatusDeliveredClub
	if batchType == entity.BatchTypeIndividual {
		final = entity.StatusDeliveredCustomer
	}
	return []string{entity.StatusCollecting, entity.StatusProduction, final}
}

func position(batchType, status string) int {
	for i, s := range Sequence(batchType) {
		if s == status {
			return i
		}
	}
	return -1
}

// IsValid indica si status pertenece a la secuencia del tipo de lote.
func IsValid(batchType, status string) bool {
	return position(batchType, status) >= 0
}

// IsFinal indica si status es el último de la secuencia.
func IsFinal(batchType, status string) bool {
	seq := Sequence(batchType)
	return status == seq[len(seq)-1]
}

// Next devuelve el estado siguiente. Los estados finales y cancelado no avanzan.
func Next(batchType, status string) (string, error) {
	i := position(batchType, status)
	seq := Sequence(batchType)
	if i < 0 {
		return "", fmt.Errorf("%w: estado %q no admite avance", domain.ErrConflict, status)
	}
	if i == len(seq)-1 {
		return "", fmt.Errorf("%w: %q es un estado final", domain.ErrConflict, status)
	}
	return seq[i+1], nil
}

// Prev devuelve el estado anterior. recopilando no retrocede.
func Prev(batchType, status string) (string, error) {
	i := position(batchType, status)
	if i < 0 {
		return "", fmt.Errorf("%w: estado %q no admite retroceso", domain.ErrConflict, status)
	}
	if i == 0 {
		return "", fmt.Errorf("%w: %q es el estado inicial", domain.ErrConflict, status)
	}
	return Sequence(batchType)[i-1], nil
}

// AcceptsIncidents indica si un pedido en status puede generar reposiciones:
// solo cuando ya está fabricado o entregado.
func AcceptsIncidents(batchType, status string) bool {
	return position(batchType, status) >= 1
}
