package catalogRepo

import (
	"context"
	"fmt"
	"time"

	"radiant/database"
	"radiant/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCatalogRepo implements CatalogRepository using MongoDB.
type MongoCatalogRepo struct {
	coll *mongo.Collection
}

// NewMongoCatalogRepo constructs a new instance of MongoCatalogRepo.
func NewMongoCatalogRepo() CatalogRepository {
	db := database.MongoClient.Database("radiant")
	return &MongoCatalogRepo{coll: db.Collection("catalog_items")}
}

// Upsert inserts or replaces the cached item, keyed by upstream item id and
// location. Safe to re-run: concurrent or retried syncs converge on the
// last writer's copy.
func (repo *MongoCatalogRepo) Upsert(ctx context.Context, item models.CatalogItem) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": item.ID, "locationKey": item.LocationKey}
	update := bson.M{"$set": item}
	opts := options.Update().SetUpsert(true)
	if _, err := repo.coll.UpdateOne(ctxWithTimeout, filter, update, opts); err != nil {
		return fmt.Errorf("error upserting catalog item %s: %w", item.ID, err)
	}
	return nil
}

// GetByID retrieves one cached item for a location.
func (repo *MongoCatalogRepo) GetByID(ctx context.Context, itemID, locationKey string) (*models.CatalogItem, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var item models.CatalogItem
	filter := bson.M{"id": itemID, "locationKey": locationKey}
	if err := repo.coll.FindOne(ctxWithTimeout, filter).Decode(&item); err != nil {
		return nil, fmt.Errorf("catalog item %s not found for %s: %w", itemID, locationKey, err)
	}
	return &item, nil
}

// Search performs a case-insensitive name/category prefix search for the
// admin search UI.
func (repo *MongoCatalogRepo) Search(ctx context.Context, query string, limit int64) ([]models.CatalogItem, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"$or": []bson.M{
		{"name": bson.M{"$regex": query, "$options": "i"}},
		{"category": bson.M{"$regex": query, "$options": "i"}},
	}}
	opts := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := repo.coll.Find(ctxWithTimeout, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error searching catalog: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var items []models.CatalogItem
	for cursor.Next(ctxWithTimeout) {
		var item models.CatalogItem
		if err := cursor.Decode(&item); err != nil {
			return nil, fmt.Errorf("error decoding catalog item: %w", err)
		}
		items = append(items, item)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return items, nil
}
