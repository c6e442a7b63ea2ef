package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Tipos de lote. Los envíos individuales no son lotes: el pedido lleva BatchTypeIndividual y número 0.
const (
	BatchTypeGlobal     = "global"
	BatchTypeError      = "error"
	BatchTypeIndividual = "individual"
)

// Estados de lote y de pedido.
const (
	StatusCollecting        = "recopilando"
	StatusProduction        = "en_produccion"
	StatusDeliveredClub     = "entregado_club"
	StatusDeliveredCustomer = "entregado_cliente" // final de envíos individuales
	StatusCancelled         = "cancelado"
)

// IndividualKey es la clave de lote que muestran los pedidos de envío individual.
const IndividualKey = "INDIVIDUAL"

// Batch agrupa los pedidos de un club que se fabrican y entregan juntos.
type Batch struct {
	ID           string
	ClubID       string
	Type         string
	Number       int
	Status       string
	OpenedAt     time.Time
	ProductionAt *time.Time
	DeliveredAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Key devuelve "7" para lotes globales y "ERR-2" para lotes de error.
func (b *Batch) Key() string {
	return BatchKey(b.Type, b.Number)
}

// BatchKey construye la clave visible de un lote.
func BatchKey(batchType string, number int) string {
	switch batchType {
	case BatchTypeError:
		return fmt.Sprintf("ERR-%d", number)
	case BatchTypeIndividual:
		return IndividualKey
	default:
		return strconv.Itoa(number)
	}
}

// ParseBatchKey interpreta "7", "ERR-2" o "INDIVIDUAL".
func ParseBatchKey(key string) (batchType string, number int, err error) {
	key = strings.TrimSpace(strings.ToUpper(key))
	switch {
	case key == IndividualKey:
		return BatchTypeIndividual, 0, nil
	case strings.HasPrefix(key, "ERR-"):
		n, err := strconv.Atoi(strings.TrimPrefix(key, "ERR-"))
		if err != nil || n <= 0 {
			return "", 0, fmt.Errorf("clave de lote inválida: %q", key)
		}
		return BatchTypeError, n, nil
	default:
		n, err := strconv.Atoi(key)
		if err != nil || n <= 0 {
			return "", 0, fmt.Errorf("clave de lote inválida: %q", key)
		}
		return BatchTypeGlobal, n, nil
	}
}

// IsBatchType indica si t es un tipo de lote con registro propio (global o error).
func IsBatchType(t string) bool {
	return t == BatchTypeGlobal || t == BatchTypeError
}
