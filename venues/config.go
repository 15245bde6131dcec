package venues

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"veyra/db"
	"veyra/middleware"
	"veyra/models"
	"veyra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetAgentConfig returns a venue's agent configuration. Owner only; the
// config carries pricing rules the public should not see.
func GetAgentConfig(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	venueID := ps.ByName("venueid")
	if !isOwner(ctx, venueID, middleware.UserIDFromContext(r.Context())) {
		utils.RespondWithError(w, http.StatusForbidden, "not your venue")
		return
	}

	var cfg models.AgentConfig
	err := db.AgentConfigsCollection.FindOne(ctx, bson.M{"venueid": venueID}).Decode(&cfg)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "agent config not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to fetch agent config")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, cfg)
}

// PutAgentConfig creates or replaces a venue's agent configuration.
func PutAgentConfig(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	venueID := ps.ByName("venueid")
	if !isOwner(ctx, venueID, middleware.UserIDFromContext(r.Context())) {
		utils.RespondWithError(w, http.StatusForbidden, "not your venue")
		return
	}

	var cfg models.AgentConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validateConfig(&cfg); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	cfg.VenueID = venueID
	cfg.UpdatedAt = time.Now().Unix()

	_, err := db.AgentConfigsCollection.ReplaceOne(ctx,
		bson.M{"venueid": venueID}, cfg, options.Replace().SetUpsert(true))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to save agent config")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, cfg)
}

func validateConfig(cfg *models.AgentConfig) error {
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	if cfg.Language != "en" && cfg.Language != "sv" {
		return fmt.Errorf("language must be en or sv")
	}
	for _, et := range cfg.EventTypes {
		switch et.Policy {
		case models.EventPolicyWelcome, models.EventPolicyDeclined, models.EventPolicyAskOwner:
		default:
			return fmt.Errorf("unknown event policy: %s", et.Policy)
		}
	}
	for i := range cfg.FAQ {
		cfg.FAQ[i].Question = strings.TrimSpace(cfg.FAQ[i].Question)
		cfg.FAQ[i].Answer = strings.TrimSpace(cfg.FAQ[i].Answer)
	}
	p := cfg.BookingParams
	if p.MinGuests < 0 || p.MaxGuests < 0 || (p.MaxGuests > 0 && p.MinGuests > p.MaxGuests) {
		return fmt.Errorf("guest bounds are invalid")
	}
	for _, wd := range p.BlockedWeekdays {
		if wd < 0 || wd > 6 {
			return fmt.Errorf("blocked weekdays must be 0-6")
		}
	}
	return nil
}

func isOwner(ctx context.Context, venueID, userID string) bool {
	if userID == "" {
		return false
	}
	count, err := db.VenuesCollection.CountDocuments(ctx, bson.M{"venueid": venueID, "ownerId": userID})
	return err == nil && count > 0
}
