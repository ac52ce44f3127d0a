package recommender

import (
	"testing"

	domainerrors "tastebud/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProposal(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		restaurantID int64
		items        int
		comment      string
	}{
		{
			name:         "plain object",
			content:      `{"restaurant_id": 3, "items": [{"item_id": 10, "quantity": 2}], "comment": "Spicy and filling"}`,
			restaurantID: 3,
			items:        1,
			comment:      "Spicy and filling",
		},
		{
			name:         "fenced object",
			content:      "```json\n{\"restaurant_id\": 4, \"items\": [{\"item_id\": 1}, {\"item_id\": 2}], \"comment\": \"ok\"}\n```",
			restaurantID: 4,
			items:        2,
			comment:      "ok",
		},
		{
			name:         "surrounding prose",
			content:      `Here you go: {"restaurant_id": 5, "items": [], "comment": ""} Enjoy!`,
			restaurantID: 5,
			items:        0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proposal, err := ParseProposal(tt.content)
			require.NoError(t, err)
			assert.Equal(t, tt.restaurantID, proposal.RestaurantID)
			assert.Len(t, proposal.Items, tt.items)
			assert.Equal(t, tt.comment, proposal.Comment)
		})
	}
}

func TestParseProposal_QuantityPresence(t *testing.T) {
	proposal, err := ParseProposal(`{"restaurant_id": 1, "items": [{"item_id": 1}, {"item_id": 2, "quantity": 0}, {"item_id": 3, "quantity": 4}]}`)
	require.NoError(t, err)
	require.Len(t, proposal.Items, 3)

	assert.Nil(t, proposal.Items[0].Quantity)
	require.NotNil(t, proposal.Items[1].Quantity)
	assert.Equal(t, 0, *proposal.Items[1].Quantity)
	require.NotNil(t, proposal.Items[2].Quantity)
	assert.Equal(t, 4, *proposal.Items[2].Quantity)
}

func TestParseProposal_Malformed(t *testing.T) {
	for _, content := range []string{
		"",
		"I would recommend the noodles.",
		`{"restaurant_id": "three", "items": []}`,
		`{"restaurant_id": 1, "items": [{"item_id": 1, "quantity": 1.5}]}`,
		`{"restaurant_id": 1, "items": [`,
	} {
		_, err := ParseProposal(content)
		assert.ErrorIs(t, err, domainerrors.ErrRecommenderMalformed, content)
	}
}
