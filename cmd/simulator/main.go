package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

// Rule seeds a maintenance rule through the API.
type Rule struct {
	SystemID      string `json:"system_id"`
	PartName      string `json:"part_name"`
	TriggerType   string `json:"trigger_type"`
	IntervalValue int    `json:"interval_value"`
	WarningBefore int    `json:"warning_before"`
}

// Trip is the payload for the complete-trip endpoint.
type Trip struct {
	DurationHours float64 `json:"trip_duration_hours"`
	TripDate      string  `json:"trip_date"`
}

// ServiceLog is the payload for the maintenance log endpoint.
type ServiceLog struct {
	SystemID   string `json:"system_id"`
	PartName   string `json:"part_name"`
	DoneAt     string `json:"done_at"`
	Technician string `json:"technician"`
	Notes      string `json:"notes"`
}

var defaultRules = []Rule{
	{SystemID: "engine", PartName: "Engine oil", TriggerType: "hours", IntervalValue: 100, WarningBefore: 20},
	{SystemID: "engine", PartName: "Impeller", TriggerType: "hours", IntervalValue: 200, WarningBefore: 30},
	{SystemID: "engine", PartName: "Fuel filter", TriggerType: "trips", IntervalValue: 25, WarningBefore: 5},
	{SystemID: "nets", PartName: "Trawl net inspection", TriggerType: "trips", IntervalValue: 10, WarningBefore: 2},
	{SystemID: "safety", PartName: "Life raft service", TriggerType: "days", IntervalValue: 365, WarningBefore: 30},
	{SystemID: "safety", PartName: "Flare kit", TriggerType: "days", IntervalValue: 180, WarningBefore: 14},
	{SystemID: "electronics", PartName: "Depth sounder", TriggerType: "sensor", IntervalValue: 1, WarningBefore: 0},
	{SystemID: "hydraulics", PartName: "Winch hydraulic fluid", TriggerType: "hours", IntervalValue: 500, WarningBefore: 50},
	{SystemID: "cooling", PartName: "Raw water strainer", TriggerType: "trips", IntervalValue: 15, WarningBefore: 3},
}

var vesselNames = []string{
	"Sea Pearl", "Northern Star", "Lady Marina", "Blue Horizon", "Ocean Queen",
	"Silver Fin", "Morning Tide", "Golden Catch", "Storm Rider", "Coral Dawn",
}

var technicians = []string{"R. Perera", "S. Fernando", "K. de Silva", "M. Jayawardena"}

var authToken string

func apiRequest(method, url string, payload interface{}) (*http.Response, error) {
	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payload: %w", err)
		}
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}
	client := &http.Client{Timeout: 10 * time.Second}
	return client.Do(req)
}

// login obtains a token, registering the account first if it does not exist.
func login(apiURL, email, password string) error {
	creds := map[string]string{"email": email, "password": password}

	resp, err := apiRequest(http.MethodPost, apiURL+"/auth/login", creds)
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		reg, err := apiRequest(http.MethodPost, apiURL+"/auth/register", creds)
		if err != nil {
			return fmt.Errorf("register request failed: %w", err)
		}
		reg.Body.Close()
		if reg.StatusCode != http.StatusCreated {
			return fmt.Errorf("registration failed with status: %d", reg.StatusCode)
		}
		log.WithField("email", email).Info("Registered simulator account")

		resp, err = apiRequest(http.MethodPost, apiURL+"/auth/login", creds)
		if err != nil {
			return fmt.Errorf("login request failed: %w", err)
		}
		defer resp.Body.Close()
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("login failed with status: %d", resp.StatusCode)
	}

	var result struct {
		Token string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode login response: %w", err)
	}
	authToken = result.Token
	return nil
}

func createVessel(apiURL, name string) (string, error) {
	vessel := map[string]string{
		"name":      name,
		"type":      []string{"trawler", "longliner", "purse seiner"}[rand.Intn(3)],
		"home_port": []string{"Negombo", "Galle", "Trincomalee", "Beruwala"}[rand.Intn(4)],
	}

	resp, err := apiRequest(http.MethodPost, apiURL+"/vessels", vessel)
	if err != nil {
		return "", fmt.Errorf("failed to create vessel: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("vessel creation failed with status: %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	id, ok := result["id"].(string)
	if !ok {
		return "", fmt.Errorf("invalid vessel ID in response")
	}

	log.WithFields(log.Fields{"vessel_id": id, "name": name}).Info("Created vessel")
	return id, nil
}

func seedRules(apiURL string) {
	for _, rule := range defaultRules {
		resp, err := apiRequest(http.MethodPost, apiURL+"/maintenance/rules", rule)
		if err != nil {
			log.WithError(err).Error("Failed to seed rule")
			continue
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			log.WithFields(log.Fields{"part": rule.PartName, "status": resp.StatusCode}).Warn("Rule not created")
		}
	}
	log.WithField("rules", len(defaultRules)).Info("Seeded maintenance rules")
}

func completeTrip(apiURL, vesselID string, day time.Time) {
	trip := Trip{
		DurationHours: 4 + rand.Float64()*10,
		TripDate:      day.Format("2006-01-02"),
	}
	resp, err := apiRequest(http.MethodPost, apiURL+"/maintenance/vessels/"+vesselID+"/complete-trip", trip)
	if err != nil {
		log.WithError(err).Error("Failed to complete trip")
		return
	}
	resp.Body.Close()
	log.WithFields(log.Fields{
		"vessel_id": vesselID,
		"hours":     fmt.Sprintf("%.1f", trip.DurationHours),
		"date":      trip.TripDate,
		"status":    resp.StatusCode,
	}).Info("Completed trip")
}

func logService(apiURL, vesselID string, day time.Time) {
	rule := defaultRules[rand.Intn(len(defaultRules))]
	entry := ServiceLog{
		SystemID:   rule.SystemID,
		PartName:   rule.PartName,
		DoneAt:     day.Format("2006-01-02"),
		Technician: technicians[rand.Intn(len(technicians))],
		Notes:      "Routine service",
	}
	resp, err := apiRequest(http.MethodPost, apiURL+"/maintenance/vessels/"+vesselID+"/logs", entry)
	if err != nil {
		log.WithError(err).Error("Failed to log service")
		return
	}
	resp.Body.Close()
	log.WithFields(log.Fields{
		"vessel_id": vesselID,
		"part":      entry.PartName,
		"status":    resp.StatusCode,
	}).Info("Logged service")
}

func fetchSummary(apiURL, vesselID string) {
	resp, err := apiRequest(http.MethodGet, apiURL+"/maintenance/vessels/"+vesselID+"/summary", nil)
	if err != nil {
		log.WithError(err).Error("Failed to fetch summary")
		return
	}
	defer resp.Body.Close()

	var summary struct {
		OverallStatus string `json:"overall_status"`
		Systems       []struct {
			SystemName string `json:"system_name"`
			Status     string `json:"status"`
			Summary    string `json:"summary_message"`
		} `json:"systems"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		log.WithError(err).Error("Failed to decode summary")
		return
	}
	log.WithFields(log.Fields{"vessel_id": vesselID, "overall": summary.OverallStatus}).Info("Fetched summary")
	for _, sys := range summary.Systems {
		if sys.Status != "operational" {
			log.WithFields(log.Fields{"system": sys.SystemName, "status": sys.Status, "message": sys.Summary}).Warn("Attention needed")
		}
	}
}

// simulateVessel runs one fishing season for a vessel. Every tick is one day:
// most days the vessel goes out, occasionally a part gets serviced, and every
// few days the skipper checks the maintenance summary.
func simulateVessel(apiURL, vesselID string, interval time.Duration) {
	day := time.Now().AddDate(0, -6, 0)
	tick := time.NewTicker(interval)
	defer tick.Stop()

	for range tick.C {
		day = day.AddDate(0, 0, 1)

		if rand.Float64() < 0.8 {
			completeTrip(apiURL, vesselID, day)
		}
		if rand.Float64() < 0.1 {
			logService(apiURL, vesselID, day)
		}
		if day.Day()%7 == 0 {
			fetchSummary(apiURL, vesselID)
		}
	}
}

func main() {
	apiURL := os.Getenv("API_BASE_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080/api/v1"
	}

	email := os.Getenv("SIM_EMAIL")
	if email == "" {
		email = "simulator@fishspot.dev"
	}
	password := os.Getenv("SIM_PASSWORD")
	if password == "" {
		password = "simulator-password"
	}

	fleetSize := 3
	if val := os.Getenv("FLEET_SIZE"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n >= 1 {
			fleetSize = n
		}
	}

	interval := 2 * time.Second
	if v := os.Getenv("SIM_TICK_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			interval = time.Duration(n) * time.Second
		}
	}

	log.WithFields(log.Fields{
		"fleet_size": fleetSize,
		"api_url":    apiURL,
		"interval":   interval,
	}).Info("Starting fishing fleet simulation")

	if err := login(apiURL, email, password); err != nil {
		log.WithError(err).Fatal("Failed to authenticate")
	}

	seedRules(apiURL)

	vesselIDs := make([]string, 0, fleetSize)
	for i := 0; i < fleetSize; i++ {
		name := vesselNames[i%len(vesselNames)]
		id, err := createVessel(apiURL, name)
		if err != nil {
			log.WithError(err).Error("Failed to create vessel")
			continue
		}
		vesselIDs = append(vesselIDs, id)
	}

	if len(vesselIDs) == 0 {
		log.Error("No vessels created. Ensure the API is reachable. Exiting.")
		time.Sleep(2 * time.Second)
		return
	}

	for _, id := range vesselIDs {
		go simulateVessel(apiURL, id, interval)
	}

	log.Info("Trip simulation started")
	select {} // Block forever
}
