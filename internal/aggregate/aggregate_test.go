package aggregate

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"chargefleet/internal/models"
)

func TestCounts(t *testing.T) {
	t.Run("location count is distinct station ids", func(t *testing.T) {
		stations := []models.Station{
			{ID: "st-1", Name: "Harbor"},
			{ID: "st-2", Name: "Harbor"}, // same display name, different site
			{ID: "st-1", Name: "Harbor"},
		}
		assert.Equal(t, 2, LocationCount(stations))
	})

	t.Run("charging point count ignores tariff history depth", func(t *testing.T) {
		records := []models.UtilizationRecord{
			{StationID: "st-1", ConnectorID: "a", Price: 0.30},
			{StationID: "st-1", ConnectorID: "a", Price: 0.45}, // newer tariff, same connector
			{StationID: "st-1", ConnectorID: "b"},
			{StationID: "st-2", ConnectorID: "a"},
		}
		assert.Equal(t, 3, ChargingPointCount(records))
	})

	t.Run("empty inputs count zero", func(t *testing.T) {
		assert.Equal(t, 0, LocationCount(nil))
		assert.Equal(t, 0, ChargingPointCount(nil))
	})
}

func TestDistinctConnectors(t *testing.T) {
	records := []models.UtilizationRecord{
		{StationID: "st-1", ConnectorID: "b"},
		{StationID: "st-1", ConnectorID: "a"},
		{StationID: "st-1", ConnectorID: "b"},
		{StationID: "st-2", ConnectorID: "z"},
	}

	assert.Equal(t, []string{"a", "b"}, DistinctConnectors(records, "st-1"))
	assert.Empty(t, DistinctConnectors(records, "st-404"))
}

func TestPaginate(t *testing.T) {
	ids := make([]string, 12)
	for i := range ids {
		ids[i] = fmt.Sprintf("conn-%02d", i)
	}

	t.Run("twelve items at page size five", func(t *testing.T) {
		page1 := Paginate(ids, 1, 5)
		assert.Equal(t, 3, page1.TotalPages)
		assert.Len(t, page1.Items, 5)
		assert.Equal(t, "conn-00", page1.Items[0])

		page3 := Paginate(ids, 3, 5)
		assert.Len(t, page3.Items, 2)
		assert.Equal(t, "conn-10", page3.Items[0])

		page4 := Paginate(ids, 4, 5)
		assert.Equal(t, 3, page4.TotalPages)
		assert.Empty(t, page4.Items)
	})

	t.Run("zero items yield zero pages", func(t *testing.T) {
		page := Paginate(nil, 1, 5)
		assert.Equal(t, 0, page.TotalPages)
		assert.Empty(t, page.Items)
	})

	t.Run("page below one yields an empty slice", func(t *testing.T) {
		page := Paginate(ids, 0, 5)
		assert.Equal(t, 3, page.TotalPages)
		assert.Empty(t, page.Items)
	})

	t.Run("slice is a copy", func(t *testing.T) {
		page := Paginate(ids, 1, 5)
		page.Items[0] = "mutated"
		assert.Equal(t, "conn-00", ids[0])
	})
}
