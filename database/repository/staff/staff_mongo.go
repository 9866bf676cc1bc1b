package staffRepo

import (
	"context"
	"fmt"
	"time"

	"radiant/database"
	"radiant/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoStaffRepo implements StaffRepository using MongoDB.
type MongoStaffRepo struct {
	staffColl *mongo.Collection
	rulesColl *mongo.Collection
}

// NewMongoStaffRepo constructs a new instance of MongoStaffRepo.
func NewMongoStaffRepo() StaffRepository {
	db := database.MongoClient.Database("radiant")
	return &MongoStaffRepo{
		staffColl: db.Collection("staff"),
		rulesColl: db.Collection("routing_rules"),
	}
}

// GetByID retrieves a staff record by id.
func (repo *MongoStaffRepo) GetByID(ctx context.Context, staffID string) (*models.Staff, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var staff models.Staff
	if err := repo.staffColl.FindOne(ctxWithTimeout, bson.M{"id": staffID}).Decode(&staff); err != nil {
		return nil, fmt.Errorf("staff %s not found: %w", staffID, err)
	}
	return &staff, nil
}

// ListBookable returns bookable staff offering the service at the location.
// The services mapping doubles as the eligibility filter: no upstream item
// id mapped for (service, location) means not bookable there.
func (repo *MongoStaffRepo) ListBookable(ctx context.Context, serviceSlug, locationKey string) ([]models.Staff, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	mappingField := fmt.Sprintf("services.%s.%s", serviceSlug, locationKey)
	filter := bson.M{
		"bookable":   true,
		"locations":  locationKey,
		mappingField: bson.M{"$exists": true, "$ne": ""},
	}
	cursor, err := repo.staffColl.Find(ctxWithTimeout, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing bookable staff: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var staff []models.Staff
	for cursor.Next(ctxWithTimeout) {
		var s models.Staff
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("error decoding staff: %w", err)
		}
		staff = append(staff, s)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return staff, nil
}

// ActiveRoutingRules returns every active routing rule. The rule set is
// small; scope matching happens in the routing resolver.
func (repo *MongoStaffRepo) ActiveRoutingRules(ctx context.Context) ([]models.RoutingRule, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.rulesColl.Find(ctxWithTimeout, bson.M{"active": true})
	if err != nil {
		return nil, fmt.Errorf("error listing routing rules: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var rules []models.RoutingRule
	for cursor.Next(ctxWithTimeout) {
		var rule models.RoutingRule
		if err := cursor.Decode(&rule); err != nil {
			return nil, fmt.Errorf("error decoding routing rule: %w", err)
		}
		rules = append(rules, rule)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return rules, nil
}
