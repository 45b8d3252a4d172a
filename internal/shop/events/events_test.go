package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zhiidetopchubaeva/shop/pkg/messaging"
)

func TestEvents(t *testing.T) {
	userID := uuid.MustParse("6f1c2a34-0d7e-4c55-9a0e-2d9f3b8c1a01")
	productID := uuid.MustParse("1d2c3b4a-5e6f-4a7b-8c9d-0e1f2a3b4c5d")
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	testCases := []struct {
		name        string
		event       messaging.Event
		wantSubject string
		wantField   string
		wantValue   any
	}{
		{
			name:        "like toggled",
			event:       LikeToggled{UserID: userID, ProductID: productID, Liked: true, At: at},
			wantSubject: LikeToggledSubject,
			wantField:   "liked",
			wantValue:   true,
		},
		{
			name:        "rating submitted",
			event:       RatingSubmitted{UserID: userID, ProductID: productID, Value: 4, Created: true, At: at},
			wantSubject: RatingSubmittedSubject,
			wantField:   "value",
			wantValue:   float64(4),
		},
		{
			name:        "comment created",
			event:       CommentCreated{CommentID: uuid.New(), ProductID: productID, AuthorID: userID, At: at},
			wantSubject: CommentCreatedSubject,
			wantField:   "product_id",
			wantValue:   productID.String(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			data, err := tc.event.Payload()

			// then
			require.NoError(t, err)
			assert.Equal(t, tc.wantSubject, tc.event.Subject())
			var decoded map[string]any
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, tc.wantValue, decoded[tc.wantField])
		})
	}
}
