package postgresql

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"

	"github.com/vetanpay/payroll-backend-go/internal/pkg/database"
)

type stubTx struct {
	pgx.Tx
	id int
}

func TestGetQuerier_PrefersTransactionOnContext(t *testing.T) {
	tx := stubTx{id: 1}
	ctx := ContextWithTx(context.Background(), tx)

	q := GetQuerier(ctx, &database.DB{})
	assert.Equal(t, tx, q)
}

func TestGetQuerier_FallsBackToPool(t *testing.T) {
	db := &database.DB{}

	q := GetQuerier(context.Background(), db)
	assert.Equal(t, database.Querier(db.Pool), q)
}
