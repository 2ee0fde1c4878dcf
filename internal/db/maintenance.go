package db

import (
	"context"
	"fmt"
	"time"

	"github.com/Thenushan05/FishSpot-Backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRuleCollection implements RuleCollection for MongoDB.
type MongoRuleCollection struct {
	Collection *mongo.Collection
}

// InsertRule inserts a maintenance rule.
func (c *MongoRuleCollection) InsertRule(ctx context.Context, rule models.MaintenanceRule) (primitive.ObjectID, error) {
	rule.ID = primitive.NewObjectID()
	rule.CreatedAt = time.Now()
	if _, err := c.Collection.InsertOne(ctx, rule); err != nil {
		return primitive.NilObjectID, err
	}
	return rule.ID, nil
}

// FindRules returns all rules for a user, optionally filtered by system.
func (c *MongoRuleCollection) FindRules(ctx context.Context, userID, systemID string) ([]models.MaintenanceRule, error) {
	filter := bson.M{"user_id": userID}
	if systemID != "" {
		filter["system_id"] = systemID
	}
	cursor, err := c.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rules []models.MaintenanceRule
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// FindRuleByID finds a rule by id, scoped to its owner.
func (c *MongoRuleCollection) FindRuleByID(ctx context.Context, id, userID string) (*models.MaintenanceRule, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid rule ID: %w", err)
	}
	var rule models.MaintenanceRule
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID, "user_id": userID}).Decode(&rule)
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

// UpdateRule applies the provided fields to a rule. Nil fields are left
// unchanged.
func (c *MongoRuleCollection) UpdateRule(ctx context.Context, id, userID string, update models.UpdateMaintenanceRuleRequest) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid rule ID: %w", err)
	}

	set := bson.M{}
	if update.IntervalValue != nil {
		set["interval_value"] = *update.IntervalValue
	}
	if update.WarningBefore != nil {
		set["warning_before"] = *update.WarningBefore
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if len(set) == 0 {
		return fmt.Errorf("no fields to update")
	}

	result, err := c.Collection.UpdateOne(ctx, bson.M{"_id": objectID, "user_id": userID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeleteRule deletes a rule by id, scoped to its owner.
func (c *MongoRuleCollection) DeleteRule(ctx context.Context, id, userID string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid rule ID: %w", err)
	}
	result, err := c.Collection.DeleteOne(ctx, bson.M{"_id": objectID, "user_id": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// MongoStateCollection implements StateCollection for MongoDB. There is at
// most one state document per (vessel, user).
type MongoStateCollection struct {
	Collection *mongo.Collection
}

// FindState returns the state for a vessel, or mongo.ErrNoDocuments if the
// vessel has no state yet.
func (c *MongoStateCollection) FindState(ctx context.Context, vesselID, userID string) (*models.VesselState, error) {
	var state models.VesselState
	err := c.Collection.FindOne(ctx, bson.M{"vessel_id": vesselID, "user_id": userID}).Decode(&state)
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// UpsertState writes a vessel state, creating the document if needed.
func (c *MongoStateCollection) UpsertState(ctx context.Context, state models.VesselState) error {
	opts := options.Update().SetUpsert(true)
	_, err := c.Collection.UpdateOne(
		ctx,
		bson.M{"vessel_id": state.VesselID, "user_id": state.UserID},
		bson.M{"$set": state},
		opts,
	)
	return err
}

// MongoLogCollection implements LogCollection for MongoDB.
type MongoLogCollection struct {
	Collection *mongo.Collection
}

// InsertLog appends a maintenance log.
func (c *MongoLogCollection) InsertLog(ctx context.Context, log models.MaintenanceLog) (primitive.ObjectID, error) {
	log.ID = primitive.NewObjectID()
	if _, err := c.Collection.InsertOne(ctx, log); err != nil {
		return primitive.NilObjectID, err
	}
	return log.ID, nil
}

// FindLogs returns logs for a vessel, most recent done_at first, optionally
// filtered by system and part.
func (c *MongoLogCollection) FindLogs(ctx context.Context, vesselID, userID, systemID, partName string, limit int64) ([]models.MaintenanceLog, error) {
	filter := bson.M{"vessel_id": vesselID, "user_id": userID}
	if systemID != "" {
		filter["system_id"] = systemID
	}
	if partName != "" {
		filter["part_name"] = partName
	}

	opts := options.Find().SetSort(bson.D{{Key: "done_at", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cursor, err := c.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []models.MaintenanceLog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
