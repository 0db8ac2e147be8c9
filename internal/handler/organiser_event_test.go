package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-ticketing/internal/model"
)

func TestEventReqTiers_CoercesQuantitiesAndPrices(t *testing.T) {
	req := eventReq{
		NormalQty:            "120",
		NormalPriceCents:     "1500",
		ConcessionQty:        "not-a-number",
		ConcessionPriceCents: "-5",
	}

	tiers := req.tiers(9)
	require.Len(t, tiers, 2)

	assert.Equal(t, model.TierNormal, tiers[0].Type)
	assert.Equal(t, uint64(9), tiers[0].EventID)
	assert.Equal(t, uint32(120), tiers[0].Quantity)
	assert.Equal(t, uint32(1500), tiers[0].PriceCents)

	assert.Equal(t, model.TierConcession, tiers[1].Type)
	assert.Equal(t, uint32(0), tiers[1].Quantity)
	assert.Equal(t, uint32(0), tiers[1].PriceCents)
}

func TestParseEventDate(t *testing.T) {
	d, err := parseEventDate("2026-09-12")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC), d)

	d, err = parseEventDate("2026-09-12T19:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 19, d.Hour())

	_, err = parseEventDate("next friday")
	assert.Error(t, err)
}
