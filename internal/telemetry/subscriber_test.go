package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Thenushan05/FishSpot-Backend/internal/models"
)

// MockStateCollection is a mock implementation of db.StateCollection
type MockStateCollection struct {
	mock.Mock
}

func (m *MockStateCollection) FindState(ctx context.Context, vesselID, userID string) (*models.VesselState, error) {
	args := m.Called(ctx, vesselID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VesselState), args.Error(1)
}

func (m *MockStateCollection) UpsertState(ctx context.Context, state models.VesselState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

// fakeMessage implements the subset of paho.Message the handler touches.
type fakeMessage struct {
	topic   string
	payload []byte
}

func (f *fakeMessage) Duplicate() bool   { return false }
func (f *fakeMessage) Qos() byte         { return 1 }
func (f *fakeMessage) Retained() bool    { return false }
func (f *fakeMessage) Topic() string     { return f.topic }
func (f *fakeMessage) MessageID() uint16 { return 0 }
func (f *fakeMessage) Payload() []byte   { return f.payload }
func (f *fakeMessage) Ack()              {}

func TestHandleTrip_AppliesReport(t *testing.T) {
	states := new(MockStateCollection)
	s := &Subscriber{states: states}

	existing := &models.VesselState{VesselID: "v1", UserID: "u1", EngineHours: 100, TotalTrips: 5}
	states.On("FindState", mock.Anything, "v1", "u1").Return(existing, nil)
	states.On("UpsertState", mock.Anything, mock.MatchedBy(func(state models.VesselState) bool {
		return state.EngineHours == 108 && state.TotalTrips == 6 && state.LastTripDate == "2025-06-01"
	})).Return(nil)

	msg := &fakeMessage{
		topic:   "fishspot/vessels/v1/trips",
		payload: []byte(`{"vessel_id":"v1","user_id":"u1","trip_duration_hours":8.5,"trip_date":"2025-06-01"}`),
	}
	s.handleTrip(nil, msg)

	states.AssertExpectations(t)
}

func TestHandleTrip_NoExistingState(t *testing.T) {
	states := new(MockStateCollection)
	s := &Subscriber{states: states}

	states.On("FindState", mock.Anything, "v2", "u1").Return(nil, assert.AnError)
	states.On("UpsertState", mock.Anything, mock.MatchedBy(func(state models.VesselState) bool {
		return state.VesselID == "v2" && state.EngineHours == 6 && state.TotalTrips == 1
	})).Return(nil)

	msg := &fakeMessage{
		topic:   "fishspot/vessels/v2/trips",
		payload: []byte(`{"vessel_id":"v2","user_id":"u1","trip_duration_hours":6,"trip_date":"2025-06-02"}`),
	}
	s.handleTrip(nil, msg)

	states.AssertExpectations(t)
}

func TestHandleTrip_DropsMalformedPayload(t *testing.T) {
	states := new(MockStateCollection)
	s := &Subscriber{states: states}

	s.handleTrip(nil, &fakeMessage{topic: "fishspot/vessels/v1/trips", payload: []byte("not json")})
	s.handleTrip(nil, &fakeMessage{topic: "fishspot/vessels/v1/trips", payload: []byte(`{"trip_duration_hours":3}`)})

	states.AssertNotCalled(t, "UpsertState", mock.Anything, mock.Anything)
}
