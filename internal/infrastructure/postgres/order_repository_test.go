package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/clubmerch-api/internal/domain/repository"
)

func TestOrderWhere(t *testing.T) {
	where, args := orderWhere(repository.OrderFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	n := 3
	yes := true
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	where, args = orderWhere(repository.OrderFilter{
		ClubID:        "c1",
		BatchType:     "global",
		BatchNumber:   &n,
		IsReplacement: &yes,
		From:          &from,
	})
	assert.Equal(t, " WHERE club_id = $1 AND batch_type = $2 AND batch_number = $3 AND is_replacement = $4 AND created_at >= $5", where)
	assert.Equal(t, []any{"c1", "global", 3, true, from}, args)
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	assert.Equal(t, "x", derefString(nullIfEmpty("x")))
	assert.Empty(t, derefString(nil))
}

func TestLookupIPv4(t *testing.T) {
	assert.Equal(t, "127.0.0.1", lookupIPv4(t.Context(), "127.0.0.1"))
	assert.Empty(t, lookupIPv4(t.Context(), "::1"))
}

func TestSchemaIncludesCollectingIndex(t *testing.T) {
	assert.Contains(t, schemaSQL, "batches_one_collecting")
	assert.Contains(t, schemaSQL, "WHERE status = 'recopilando'")
}
