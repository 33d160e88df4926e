package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTable(t *testing.T) {
	table := Default()
	require.NoError(t, table.Validate())

	assert.Equal(t, []float64{385, 425, 515}, table.TrailingXs())
	assert.InDelta(t, 9.6, table.LineHeight(), 1e-9)
	assert.Equal(t, Letter, table.Page)
}

func TestTableValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Table)
		err    error
	}{
		{
			name:   "empty contact columns",
			mutate: func(tb *Table) { tb.Contact.Xs = nil },
			err:    ErrEmptyContactColumns,
		},
		{
			name:   "zero page",
			mutate: func(tb *Table) { tb.Page = PageSize{} },
			err:    ErrInvalidPage,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			table := Default()
			tc.mutate(&table)
			assert.ErrorIs(t, table.Validate(), tc.err)
		})
	}

	table := Default()
	table.Item.TrailingOffsets = []float64{1}
	assert.Error(t, table.Validate())

	table = Default()
	table.Costs.Size = 0
	assert.EqualError(t, table.Validate(), "layout: costs.size must be positive")
}
