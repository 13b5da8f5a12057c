// config/db.go
package config

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectDB opens the shared mongo client. Failures are logged and never
// abort startup: a nil client is returned when the URI itself is unusable,
// and a failed ping still returns the client so it can recover once the
// server becomes reachable.
func ConnectDB(cfg *Config) *mongo.Client {
	logrus.Infof("Connecting to MongoDB at: %s", maskMongoURI(cfg.MongoURI))

	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)
	clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(serverAPI)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		logrus.WithError(err).Error("DB Connection Error")
		return nil
	}

	if err := client.Ping(ctx, nil); err != nil {
		logrus.WithError(err).Error("DB Connection Error: ping failed")
		return client
	}
	logrus.Info("Pinged your deployment. MongoDB Connected Successfully!")

	setupIndexes(client.Database(cfg.DBName))
	return client
}

// setupIndexes creates the indexes the handlers rely on.
func setupIndexes(db *mongo.Database) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	emailIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := db.Collection("users").Indexes().CreateOne(ctx, emailIndex); err != nil {
		logrus.WithError(err).Warn("Error creating email index")
	}

	slotIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "date", Value: 1}, {Key: "tableNo", Value: 1}, {Key: "startTime", Value: 1}},
	}
	if _, err := db.Collection("reservations").Indexes().CreateOne(ctx, slotIndex); err != nil {
		logrus.WithError(err).Warn("Error creating reservation slot index")
	}

	createdIndex := mongo.IndexModel{Keys: bson.D{{Key: "createdAt", Value: -1}}}
	if _, err := db.Collection("bookings").Indexes().CreateOne(ctx, createdIndex); err != nil {
		logrus.WithError(err).Warn("Error creating bookings createdAt index")
	}
}

// maskMongoURI hides the password part of a connection string for logging.
func maskMongoURI(uri string) string {
	schemeEnd := strings.Index(uri, "://")
	idx := strings.Index(uri, "@")
	if schemeEnd < 0 || idx < schemeEnd {
		return uri
	}
	if colonIdx := strings.LastIndex(uri[:idx], ":"); colonIdx > schemeEnd {
		return uri[:colonIdx+1] + "***" + uri[idx:]
	}
	return uri
}
