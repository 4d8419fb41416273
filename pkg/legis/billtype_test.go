package legis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBillTypeByCode(t *testing.T) {
	for _, typ := range BillTypes() {
		resolved, ok := BillTypeByCode(typ.Code())
		require.True(t, ok, typ.Code())
		assert.Equal(t, typ, resolved)
	}

	_, ok := BillTypeByCode("hx")
	assert.False(t, ok)
	_, ok = BillTypeByCode("")
	assert.False(t, ok)
}

func TestBillTypeLabels(t *testing.T) {
	typ, ok := BillTypeByCode("hr")
	require.True(t, ok)
	assert.Equal(t, "H.R.", typ.Label())
	assert.Equal(t, "hr", typ.String())
	assert.True(t, typ.Valid())

	assert.False(t, BillType(0).Valid())
	assert.Empty(t, BillType(99).Code())
}

func TestBillKeyString(t *testing.T) {
	key := BillKey{Congress: 111, Type: BillTypeHR, Number: 1}
	assert.Equal(t, "hr1-111", key.String())
}

func TestStatusByCode(t *testing.T) {
	status, ok := StatusByCode("INTRODUCED")
	require.True(t, ok)
	assert.Equal(t, StatusIntroduced, status)

	status, ok = StatusByCode("ENACTED:SIGNED")
	require.True(t, ok)
	assert.Equal(t, StatusEnactedSigned, status)

	_, ok = StatusByCode("UNKNOWN_STATE")
	assert.False(t, ok)
	_, ok = StatusByCode("")
	assert.False(t, ok)
}
