package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// ErrNotFinite is returned when a NUMERIC column holds NULL, NaN or infinity.
var ErrNotFinite = errors.New("db: numeric is not a finite number")

// Numeric encodes d as a NUMERIC parameter without going through float64.
func Numeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

// Decimal decodes a scanned NUMERIC.
func Decimal(n pgtype.Numeric) (decimal.Decimal, error) {
	if !n.Valid || n.NaN || n.InfinityModifier != pgtype.Finite || n.Int == nil {
		return decimal.Zero, ErrNotFinite
	}
	return decimal.NewFromBigInt(n.Int, n.Exp), nil
}
