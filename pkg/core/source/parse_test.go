package source

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RahilKothari9/supplier-analysis/pkg/models"
)

func TestParseCell(t *testing.T) {
	cases := map[string]models.Value{
		"1,234":    models.NewValue(1234),
		" 12.5 ":   models.NewValue(12.5),
		"(50)":     models.NewValue(-50),
		"-75":      models.NewValue(-75),
		"₹ 1,000":  models.NewValue(1000),
		"18%":      models.NewValue(18),
		"":         models.Unknown(),
		"-":        models.Unknown(),
		"NaN":      models.Unknown(),
		"None":     models.Unknown(),
		"n/a":      models.Unknown(),
		"restated": models.Unknown(),
		"1.2.3":    models.Unknown(),
		"Infinity": models.Unknown(),
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseCell(in), "cell %q", in)
	}
}

func TestParseAny(t *testing.T) {
	assert.Equal(t, models.NewValue(3), ParseAny(3.0))
	assert.Equal(t, models.NewValue(4), ParseAny(json.Number("4")))
	assert.Equal(t, models.NewValue(5), ParseAny("5"))
	assert.Equal(t, models.Unknown(), ParseAny(nil))
	assert.Equal(t, models.Unknown(), ParseAny(true))
}

func TestFromGrid(t *testing.T) {
	grid := [][]string{
		{"Breakdown", "9/30/2024", "2023-09-30", "TTM"},
		{"Total Revenue", "100", "90"},
		{"  Net  Income *", "10", "NaN", "12"},
		{"", "1", "2", "3"},
		{},
	}
	table := FromGrid(grid)

	require.Len(t, table.Periods, 3)
	assert.Equal(t, "2024", table.Periods[0].Label())
	assert.Equal(t, "2023", table.Periods[1].Label())
	assert.Equal(t, "TTM", table.Periods[2].Label())

	assert.Len(t, table.Rows, 2)
	row, ok := table.Row("Net Income")
	require.True(t, ok, "item names are whitespace-normalized")
	assert.False(t, row[1].Known)
	assert.Equal(t, 12.0, row[2].Amount)

	assert.True(t, FromGrid(nil).Empty())
	assert.True(t, FromGrid([][]string{{"only"}}).Empty())
}

func TestTableBuilder(t *testing.T) {
	b := newTableBuilder()
	b.add("2024-03-31", "Total Revenue", models.NewValue(10))
	b.add("2024-03-31", "Net Income", models.NewValue(1))
	b.add("2023-03-31", "Total Revenue", models.NewValue(9))
	table := b.build()

	require.Len(t, table.Periods, 2)
	row, _ := table.Row("Net Income")
	require.Len(t, row, 2, "rows are padded to the period count")
	assert.False(t, row[1].Known)
}

func TestKindOf(t *testing.T) {
	for name, want := range map[string]string{
		"Income Statement": KindIncome,
		" Profit & Loss ":  KindIncome,
		"BALANCE SHEET":    KindBalance,
		"cash_flow":        KindCashFlow,
	} {
		got, ok := KindOf(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}
	_, ok := KindOf("Shareholding Pattern")
	assert.False(t, ok)
}
