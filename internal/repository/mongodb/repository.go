package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/karangnongko/goatherd/internal/domain/models"
	"github.com/karangnongko/goatherd/internal/session"
)

const (
	sessionsCollection = "sessions"
	reportsCollection  = "monthly_reports"

	// The dashboard holds one session at a time, mirroring the two browser
	// storage keys (token, user) it replaces.
	sessionDocID = "current"
)

// MongoDBRepository persists the session snapshot and monthly report
// snapshots.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
}

var _ session.Repository = (*MongoDBRepository)(nil)

// sessionDoc flattens the session for storage; the role travels as its wire
// string so the tagged union never leaks unexported fields into BSON.
type sessionDoc struct {
	ID       string `bson:"_id"`
	Token    string `bson:"token"`
	UserID   string `bson:"user_id"`
	Username string `bson:"username"`
	Role     string `bson:"role"`
}

// NewMongoDBRepository connects to MongoDB and verifies the connection.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{client: client, dbName: dbName}, nil
}

// Save upserts the single session snapshot.
func (r *MongoDBRepository) Save(ctx context.Context, s session.Session) error {
	doc := sessionDoc{
		ID:       sessionDocID,
		Token:    s.Token,
		UserID:   s.Actor.ID,
		Username: s.Actor.Username,
		Role:     s.Actor.Role.String(),
	}

	coll := r.client.Database(r.dbName).Collection(sessionsCollection)
	_, err := coll.ReplaceOne(ctx, bson.M{"_id": sessionDocID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save session snapshot: %w", err)
	}
	return nil
}

// Load fetches the persisted snapshot, returning nil when none exists.
func (r *MongoDBRepository) Load(ctx context.Context) (*session.Session, error) {
	coll := r.client.Database(r.dbName).Collection(sessionsCollection)

	var doc sessionDoc
	err := coll.FindOne(ctx, bson.M{"_id": sessionDocID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session snapshot: %w", err)
	}

	return &session.Session{
		Token: doc.Token,
		Actor: models.Actor{
			ID:       doc.UserID,
			Username: doc.Username,
			Role:     models.ParseRole(doc.Role),
		},
	}, nil
}

// Clear removes the snapshot. A missing snapshot is not an error.
func (r *MongoDBRepository) Clear(ctx context.Context) error {
	coll := r.client.Database(r.dbName).Collection(sessionsCollection)
	if _, err := coll.DeleteOne(ctx, bson.M{"_id": sessionDocID}); err != nil {
		return fmt.Errorf("failed to clear session snapshot: %w", err)
	}
	return nil
}

// SaveMonthlyReport stores one report snapshot per export run.
func (r *MongoDBRepository) SaveMonthlyReport(ctx context.Context, report models.MonthlyFeedingReport) error {
	coll := r.client.Database(r.dbName).Collection(reportsCollection)
	if _, err := coll.InsertOne(ctx, report); err != nil {
		return fmt.Errorf("failed to insert monthly report: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
