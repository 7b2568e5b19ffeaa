package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prayastok/stok-api/internal/domain/entity"
)

func TestSignedDelta(t *testing.T) {
	cases := []struct {
		name   string
		kind   string
		status string
		want   int64
	}{
		{"incoming", entity.KindIncoming, "", 5},
		{"sale", entity.KindSale, "", -5},
		{"borrow outstanding", entity.KindBorrow, entity.StatusBorrowed, -5},
		{"borrow returned", entity.KindBorrow, entity.StatusReturned, 0},
		{"borrow sold", entity.KindBorrow, entity.StatusSold, -5},
		{"return pending", entity.KindReturn, entity.StatusPending, 0},
		{"return approved", entity.KindReturn, entity.StatusApproved, 5},
		{"return rejected", entity.KindReturn, entity.StatusRejected, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := &entity.Movement{Kind: tc.kind, Status: tc.status, Quantity: 5}
			assert.Equal(t, tc.want, m.SignedDelta())
		})
	}
}

func TestValidKind(t *testing.T) {
	for _, k := range []string{entity.KindIncoming, entity.KindSale, entity.KindBorrow, entity.KindReturn} {
		assert.True(t, entity.ValidKind(k))
	}
	assert.False(t, entity.ValidKind("loan"))
	assert.False(t, entity.ValidKind(""))
}
