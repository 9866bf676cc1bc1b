package sessionRepo

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

// MongoSessionRepo implements SessionRepository using MongoDB.
type MongoSessionRepo struct {
	coll *mongo.Collection
}

// NewMongoSessionRepo constructs a new instance of MongoSessionRepo.
func NewMongoSessionRepo() SessionRepository {
	db := database.MongoClient.Database("radiant")
	return &MongoSessionRepo{coll: db.Collection("booking_sessions")}
}

// Create stores a new session. Duplicate ids are absorbed via
// $setOnInsert, so a retried create leaves the original record untouched.
func (repo *MongoSessionRepo) Create(ctx context.Context, session models.BookingSession) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"sessionId": session.SessionID}
	update := bson.M{"$setOnInsert": session}
	opts := options.Update().SetUpsert(true)
	if _, err := repo.coll.UpdateOne(ctxWithTimeout, filter, update, opts); err != nil {
		return fmt.Errorf("error creating booking session %s: %w", session.SessionID, err)
	}
	return nil
}

// Get retrieves a session by id.
func (repo *MongoSessionRepo) Get(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var session models.BookingSession
	if err := repo.coll.FindOne(ctxWithTimeout, bson.M{"sessionId": sessionID}).Decode(&session); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("booking session %s: %w", sessionID, ErrNotFound)
		}
		return nil, fmt.Errorf("error fetching booking session %s: %w", sessionID, err)
	}
	return &session, nil
}

// Patch applies allow-listed field updates and bumps the activity timestamp.
func (repo *MongoSessionRepo) Patch(ctx context.Context, sessionID string, set map[string]any, stepVisited *int) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	fields := bson.M{"updatedAt": time.Now()}
	for k, v := range set {
		fields[k] = v
	}
	update := bson.M{"$set": fields}
	if stepVisited != nil {
		update["$addToSet"] = bson.M{"stepsVisited": *stepVisited}
	}
	res, err := repo.coll.UpdateOne(ctxWithTimeout, bson.M{"sessionId": sessionID}, update)
	if err != nil {
		return fmt.Errorf("error updating booking session %s: %w", sessionID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking session %s: %w", sessionID, ErrNotFound)
	}
	return nil
}

// FindStaleInProgress returns in-progress sessions idle since before cutoff.
func (repo *MongoSessionRepo) FindStaleInProgress(ctx context.Context, cutoff time.Time) ([]models.BookingSession, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"outcome":   models.SessionInProgress,
		"updatedAt": bson.M{"$lt": cutoff},
	}
	cursor, err := repo.coll.Find(ctxWithTimeout, filter)
	if err != nil {
		return nil, fmt.Errorf("error finding stale sessions: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var sessions []models.BookingSession
	for cursor.Next(ctxWithTimeout) {
		var s models.BookingSession
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("error decoding booking session: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return sessions, nil
}

// MarkAbandoned finalizes one stale session.
func (repo *MongoSessionRepo) MarkAbandoned(ctx context.Context, sessionID string, abandonStep int) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"outcome":     models.SessionAbandoned,
		"abandonStep": abandonStep,
		"updatedAt":   time.Now(),
	}}
	if _, err := repo.coll.UpdateOne(ctxWithTimeout, bson.M{"sessionId": sessionID}, update); err != nil {
		return fmt.Errorf("error abandoning booking session %s: %w", sessionID, err)
	}
	return nil
}

// EnsureIndexes creates the indexes the tracker and finalizer rely on.
func (repo *MongoSessionRepo) EnsureIndexes(ctx context.Context) error {
	_, err := repo.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "sessionId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "outcome", Value: 1}, {Key: "updatedAt", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("error creating booking session indexes: %w", err)
	}
	return nil
}
