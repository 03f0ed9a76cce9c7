package service

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"chargefleet/internal/filter"
	"chargefleet/internal/inject"
	"chargefleet/internal/models"
	"chargefleet/internal/store"
)

type fakeBroadcaster struct {
	events   []string
	payloads []interface{}
}

func (f *fakeBroadcaster) Broadcast(event string, data interface{}) {
	f.events = append(f.events, event)
	f.payloads = append(f.payloads, data)
}

func newTestService(t *testing.T) (*ChargingService, *store.Store, *fakeBroadcaster) {
	t.Helper()

	st := store.New()
	st.Load(
		[]models.Station{
			{ID: "st-1", Name: "Harbor", Latitude: 59.9, Longitude: 10.7, Amenities: []string{"wifi", "cafe"}},
			{ID: "st-2", Name: "Airport", Latitude: 60.2, Longitude: 11.1, Amenities: []string{"wifi"}},
		},
		[]models.UtilizationRecord{
			{StationID: "st-1", ConnectorID: "a", ConnectionType: "CCS", Currency: "EUR", Timestamp: 1700000000},
			{StationID: "st-1", ConnectorID: "b", ConnectionType: "Type2", Currency: "EUR", Timestamp: 1700000000},
			{StationID: "st-2", ConnectorID: "a", ConnectionType: "CCS", Currency: "SEK", Timestamp: 1700000000},
		},
	)

	broadcaster := &fakeBroadcaster{}
	svc := NewChargingService(
		st,
		filter.NewEngine(st),
		inject.NewInjector(rand.New(rand.NewSource(7))),
		broadcaster,
		zap.NewNop(),
	)
	return svc, st, broadcaster
}

func TestFacets(t *testing.T) {
	t.Run("derives choices from the store", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		f := svc.Facets()
		assert.Equal(t, []string{"cafe", "wifi"}, f.AmenityVocabulary)
		assert.Equal(t, 2, f.MaxConnectorCount)
		assert.Equal(t, []string{"st-1", "st-2"}, f.StationList)
	})

	t.Run("recomputes after the store moves", func(t *testing.T) {
		svc, st, _ := newTestService(t)
		_ = svc.Facets()

		table := st.Utilization()
		table = append(table, models.UtilizationRecord{StationID: "st-2", ConnectorID: "b"},
			models.UtilizationRecord{StationID: "st-2", ConnectorID: "c"})
		st.ReplaceUtilization(table)

		assert.Equal(t, 3, svc.Facets().MaxConnectorCount)
	})
}

func TestApplyFilter(t *testing.T) {
	svc, _, _ := newTestService(t)

	result := svc.ApplyFilter(&filter.Predicates{RequiredAmenities: []string{"cafe"}})

	assert.Equal(t, 1, result.LocationCount)
	assert.Equal(t, 2, result.ChargingPointCount)
	require.Len(t, result.Map.Markers, 1)
	assert.Equal(t, "Harbor", result.Map.Markers[0].Name)
	assert.InDelta(t, 59.9, result.Map.Center.Lat, 1e-9)
}

func TestConnectorsPage(t *testing.T) {
	svc, _, _ := newTestService(t)

	page := svc.ConnectorsPage("st-1", 1, 1)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, []string{"a"}, page.Items)

	beyond := svc.ConnectorsPage("st-1", 9, 1)
	assert.Empty(t, beyond.Items)
}

func TestInjectRandom(t *testing.T) {
	t.Run("appends rows, refreshes facet state and notifies clients", func(t *testing.T) {
		svc, st, broadcaster := newTestService(t)
		before := len(st.Utilization())

		result, err := svc.InjectRandom(10, nil)

		require.NoError(t, err)
		assert.Equal(t, 10, result.Added)
		assert.Contains(t, result.Message, result.StationID)
		assert.Len(t, st.Utilization(), before+10)
		assert.Equal(t, []string{"update_map"}, broadcaster.events)

		// The broadcast payload carries the filtered station set.
		require.Len(t, broadcaster.payloads, 1)
		payload, ok := broadcaster.payloads[0].(MapPayload)
		require.True(t, ok)
		assert.Len(t, payload.Markers, 2)
	})

	t.Run("filter that matches nothing surfaces the error and keeps the store", func(t *testing.T) {
		svc, st, broadcaster := newTestService(t)
		before := st.Utilization()

		_, err := svc.InjectRandom(10, &filter.Predicates{RequiredAmenities: []string{"helipad"}})

		assert.ErrorIs(t, err, inject.ErrEmptyCandidateSet)
		assert.Equal(t, before, st.Utilization())
		assert.Empty(t, broadcaster.events)
	})

	t.Run("injection candidates respect the predicate set", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		// Only st-1 carries a cafe, so it must be the chosen template.
		result, err := svc.InjectRandom(5, &filter.Predicates{RequiredAmenities: []string{"cafe"}})

		require.NoError(t, err)
		assert.Equal(t, "st-1", result.StationID)
	})
}
