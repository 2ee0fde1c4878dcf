package main

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/Thenushan05/FishSpot-Backend/internal/auth"
	"github.com/Thenushan05/FishSpot-Backend/internal/db"
	"github.com/Thenushan05/FishSpot-Backend/internal/handlers"
	"github.com/Thenushan05/FishSpot-Backend/internal/maintenance"
	"github.com/Thenushan05/FishSpot-Backend/internal/middleware"
	"github.com/Thenushan05/FishSpot-Backend/internal/telemetry"
)

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// newRouter builds the API router from the handler set.
func newRouter(authHandler *handlers.AuthHandler, vesselHandler *handlers.VesselHandler, maintenanceHandler *handlers.MaintenanceHandler, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimitMiddleware) *mux.Router {
	r := mux.NewRouter()
	r.Use(rateLimiter.RateLimit(300, 60))
	r.Use(authMiddleware.Authenticate)

	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/me", authHandler.GetProfile).Methods(http.MethodGet)

	api.HandleFunc("/vessels", vesselHandler.GetVessels).Methods(http.MethodGet)
	api.HandleFunc("/vessels", vesselHandler.CreateVessel).Methods(http.MethodPost)
	api.HandleFunc("/vessels/{id}", vesselHandler.GetVessel).Methods(http.MethodGet)
	api.HandleFunc("/vessels/{id}", vesselHandler.UpdateVessel).Methods(http.MethodPut)
	api.HandleFunc("/vessels/{id}", vesselHandler.DeleteVessel).Methods(http.MethodDelete)

	m := api.PathPrefix("/maintenance").Subrouter()
	m.HandleFunc("/rules", maintenanceHandler.GetRules).Methods(http.MethodGet)
	m.HandleFunc("/rules", maintenanceHandler.CreateRule).Methods(http.MethodPost)
	m.HandleFunc("/rules/{id}", maintenanceHandler.UpdateRule).Methods(http.MethodPut)
	m.HandleFunc("/rules/{id}", maintenanceHandler.DeleteRule).Methods(http.MethodDelete)
	m.HandleFunc("/vessels/{id}/state", maintenanceHandler.GetVesselState).Methods(http.MethodGet)
	m.HandleFunc("/vessels/{id}/state", maintenanceHandler.UpdateVesselState).Methods(http.MethodPatch)
	m.HandleFunc("/vessels/{id}/complete-trip", maintenanceHandler.CompleteTrip).Methods(http.MethodPost)
	m.HandleFunc("/vessels/{id}/logs", maintenanceHandler.GetLogs).Methods(http.MethodGet)
	m.HandleFunc("/vessels/{id}/logs", maintenanceHandler.CreateLog).Methods(http.MethodPost)
	m.HandleFunc("/vessels/{id}/summary", maintenanceHandler.GetSummary).Methods(http.MethodGet)

	return r
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found, using environment")
	}

	client, err := db.ConnectMongo()
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	log.Info("connected to MongoDB")

	database := db.Database(client)
	userCollection := &db.MongoUserCollection{Collection: database.Collection("users")}
	vesselCollection := &db.MongoVesselCollection{Collection: database.Collection("vessels")}
	ruleCollection := &db.MongoRuleCollection{Collection: database.Collection("maintenance_rules")}
	stateCollection := &db.MongoStateCollection{Collection: database.Collection("vessel_states")}
	logCollection := &db.MongoLogCollection{Collection: database.Collection("maintenance_logs")}

	authService, err := auth.NewService()
	if err != nil {
		log.WithError(err).Fatal("failed to create auth service")
	}

	calculator := maintenance.NewCalculator()

	authHandler := handlers.NewAuthHandler(authService, userCollection)
	vesselHandler := handlers.NewVesselHandler(vesselCollection)
	maintenanceHandler := handlers.NewMaintenanceHandler(ruleCollection, stateCollection, logCollection, vesselCollection, calculator)

	authMiddleware := middleware.NewAuthMiddleware(authService)
	rateLimiter := middleware.NewRateLimitMiddleware()

	router := newRouter(authHandler, vesselHandler, maintenanceHandler, authMiddleware, rateLimiter)

	// Optional MQTT ingest of trip reports from onboard units
	if broker := os.Getenv("MQTT_BROKER"); broker != "" {
		subscriber := telemetry.NewSubscriber(broker, stateCollection)
		if err := subscriber.Start(); err != nil {
			log.WithError(err).Fatal("failed to start trip report subscriber")
		}
		defer subscriber.Stop()
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.WithField("port", port).Info("HTTP server listening")
	log.Fatal(http.ListenAndServe(":"+port, router))
}
