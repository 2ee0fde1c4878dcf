// Package telemetry ingests trip-completion reports published by onboard
// units over MQTT and applies them to vessel state, so counters advance even
// when a trip is never entered through the HTTP API.
package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/Thenushan05/FishSpot-Backend/internal/db"
	"github.com/Thenushan05/FishSpot-Backend/internal/maintenance"
	"github.com/Thenushan05/FishSpot-Backend/internal/models"
)

// TripTopic is the shared subscription for trip reports; the wildcard level
// is the vessel id.
const TripTopic = "fishspot/vessels/+/trips"

// TripReport is the payload an onboard unit publishes when a trip ends.
type TripReport struct {
	VesselID      string  `json:"vessel_id"`
	UserID        string  `json:"user_id"`
	DurationHours float64 `json:"trip_duration_hours"`
	TripDate      string  `json:"trip_date"`
}

// Subscriber consumes trip reports and advances vessel counters.
type Subscriber struct {
	client paho.Client
	states db.StateCollection
}

// NewSubscriber creates a subscriber connected to the given broker URL.
func NewSubscriber(brokerURL string, states db.StateCollection) *Subscriber {
	opts := paho.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID("fishspot-backend").
		SetAutoReconnect(true).
		SetConnectTimeout(10 * time.Second)

	return &Subscriber{
		client: paho.NewClient(opts),
		states: states,
	}
}

// Start connects to the broker and subscribes to trip reports.
func (s *Subscriber) Start() error {
	if token := s.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("mqtt connect: %w", token.Error())
	}
	if token := s.client.Subscribe(TripTopic, 1, s.handleTrip); token.Wait() && token.Error() != nil {
		return fmt.Errorf("mqtt subscribe: %w", token.Error())
	}
	log.WithField("topic", TripTopic).Info("subscribed to trip reports")
	return nil
}

// Stop disconnects from the broker.
func (s *Subscriber) Stop() {
	s.client.Disconnect(250)
}

func (s *Subscriber) handleTrip(_ paho.Client, msg paho.Message) {
	var report TripReport
	if err := json.Unmarshal(msg.Payload(), &report); err != nil {
		log.WithError(err).WithField("topic", msg.Topic()).Warn("dropping malformed trip report")
		return
	}
	if report.VesselID == "" || report.UserID == "" {
		log.WithField("topic", msg.Topic()).Warn("dropping trip report without vessel or user id")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	state, err := s.states.FindState(ctx, report.VesselID, report.UserID)
	if err != nil {
		created := models.VesselState{
			VesselID: report.VesselID,
			UserID:   report.UserID,
		}
		state = &created
	}

	updated := maintenance.ApplyTrip(*state, report.DurationHours, report.TripDate, time.Now())
	if err := s.states.UpsertState(ctx, updated); err != nil {
		log.WithError(err).WithField("vessel_id", report.VesselID).Error("failed to apply trip report")
		return
	}

	log.WithFields(log.Fields{
		"vessel_id":    report.VesselID,
		"engine_hours": updated.EngineHours,
		"total_trips":  updated.TotalTrips,
	}).Info("trip report applied")
}
