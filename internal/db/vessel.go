package db

import (
	"context"
	"fmt"
	"time"

	"github.com/Thenushan05/FishSpot-Backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoVesselCollection implements VesselCollection for MongoDB.
type MongoVesselCollection struct {
	Collection *mongo.Collection
}

// InsertVessel inserts a vessel record.
func (c *MongoVesselCollection) InsertVessel(ctx context.Context, vessel models.Vessel) (primitive.ObjectID, error) {
	vessel.ID = primitive.NewObjectID()
	vessel.CreatedAt = time.Now()
	if _, err := c.Collection.InsertOne(ctx, vessel); err != nil {
		return primitive.NilObjectID, err
	}
	return vessel.ID, nil
}

// FindVessels returns all vessels owned by a user.
func (c *MongoVesselCollection) FindVessels(ctx context.Context, userID string) ([]models.Vessel, error) {
	cursor, err := c.Collection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var vessels []models.Vessel
	if err := cursor.All(ctx, &vessels); err != nil {
		return nil, err
	}
	return vessels, nil
}

// FindVesselByID finds a vessel by its ID, scoped to its owner.
func (c *MongoVesselCollection) FindVesselByID(ctx context.Context, id, userID string) (*models.Vessel, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid vessel ID: %w", err)
	}
	var vessel models.Vessel
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID, "user_id": userID}).Decode(&vessel)
	if err != nil {
		return nil, err
	}
	return &vessel, nil
}

// UpdateVessel updates a vessel by its ID.
func (c *MongoVesselCollection) UpdateVessel(ctx context.Context, id, userID string, vessel models.Vessel) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid vessel ID: %w", err)
	}
	set := bson.M{"name": vessel.Name, "type": vessel.Type, "home_port": vessel.HomePort}
	result, err := c.Collection.UpdateOne(ctx, bson.M{"_id": objectID, "user_id": userID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeleteVessel deletes a vessel by its ID.
func (c *MongoVesselCollection) DeleteVessel(ctx context.Context, id, userID string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid vessel ID: %w", err)
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
