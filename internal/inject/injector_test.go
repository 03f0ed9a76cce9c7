package inject

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chargefleet/internal/models"
)

const refTimestamp = int64(1700000000)

func seededInjector() *Injector {
	return NewInjector(rand.New(rand.NewSource(42)))
}

func eurTable() []models.UtilizationRecord {
	return []models.UtilizationRecord{
		{StationID: "st-1", ConnectorID: "A", ConnectionType: "CCS", Currency: "EUR", HasVAT: true, Timestamp: refTimestamp},
		{StationID: "st-1", ConnectorID: "B", ConnectionType: "Type2", Currency: "EUR", Timestamp: refTimestamp},
		{StationID: "st-2", ConnectorID: "A", ConnectionType: "CCS", Currency: "SEK", Timestamp: refTimestamp},
	}
}

func TestInject(t *testing.T) {
	t.Run("fifty eur rows stay in range and reference known connectors", func(t *testing.T) {
		table := eurTable()
		out, stationID, err := seededInjector().Inject(50, []string{"st-1"}, table)

		require.NoError(t, err)
		assert.Equal(t, "st-1", stationID)
		require.Len(t, out, len(table)+50)

		// Originals untouched, order preserved.
		assert.Equal(t, table, out[:len(table)])

		for _, r := range out[len(table):] {
			assert.Equal(t, "st-1", r.StationID)
			assert.Contains(t, []string{"A", "B"}, r.ConnectorID)
			assert.GreaterOrEqual(t, r.Price, 0.20)
			assert.LessOrEqual(t, r.Price, 0.90)
			assert.False(t, r.HasVAT)
			assert.Nil(t, r.ExtraTariff)
			assert.Equal(t, "EUR", r.Currency)
			assert.Equal(t, "kWh", r.Unit)
			assert.LessOrEqual(t, r.Timestamp, refTimestamp)
			assert.GreaterOrEqual(t, r.Timestamp, refTimestamp-30*24*3600)
		}
	})

	t.Run("connection type is copied from the connector template", func(t *testing.T) {
		out, _, err := seededInjector().Inject(20, []string{"st-1"}, eurTable())
		require.NoError(t, err)

		for _, r := range out[3:] {
			switch r.ConnectorID {
			case "A":
				assert.Equal(t, "CCS", r.ConnectionType)
			case "B":
				assert.Equal(t, "Type2", r.ConnectionType)
			}
		}
	})

	t.Run("currency drives the price range", func(t *testing.T) {
		cases := []struct {
			currency string
			lo, hi   float64
		}{
			{"DKK", 2.0, 7.0},
			{"kr", 2.0, 7.0},
			{"EUR", 0.20, 0.90},
			{"SEK", 2.0, 12.0},
			{"NOK", 1.0, 6.0}, // unknown currency falls back
		}

		for _, tc := range cases {
			table := []models.UtilizationRecord{
				{StationID: "st-1", ConnectorID: "A", Currency: tc.currency, Timestamp: refTimestamp},
			}
			out, _, err := seededInjector().Inject(100, []string{"st-1"}, table)
			require.NoError(t, err, tc.currency)

			for _, r := range out[1:] {
				assert.GreaterOrEqual(t, r.Price, tc.lo, tc.currency)
				assert.LessOrEqual(t, r.Price, tc.hi, tc.currency)
			}
		}
	})

	t.Run("empty candidate set is an error and leaves the table alone", func(t *testing.T) {
		table := eurTable()
		out, _, err := seededInjector().Inject(10, nil, table)

		assert.ErrorIs(t, err, ErrEmptyCandidateSet)
		assert.Nil(t, out)
		assert.Equal(t, eurTable(), table)
	})

	t.Run("station without recorded connectors is an error", func(t *testing.T) {
		_, _, err := seededInjector().Inject(10, []string{"st-unknown"}, eurTable())

		assert.ErrorIs(t, err, ErrMissingTemplate)
		assert.Contains(t, err.Error(), "st-unknown")
	})

	t.Run("seeded generators are reproducible", func(t *testing.T) {
		a, _, err := seededInjector().Inject(25, []string{"st-1", "st-2"}, eurTable())
		require.NoError(t, err)
		b, _, err := seededInjector().Inject(25, []string{"st-1", "st-2"}, eurTable())
		require.NoError(t, err)

		assert.Equal(t, a, b)
	})
}
