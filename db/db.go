package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	VenuesCollection        *mongo.Collection
	AgentConfigsCollection  *mongo.Collection
	ConversationsCollection *mongo.Collection
	MessagesCollection      *mongo.Collection
	ActionsCollection       *mongo.Collection
	BookingsCollection      *mongo.Collection
	BlockedDatesCollection  *mongo.Collection
	NotificationsCollection *mongo.Collection
	Client                  *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("venuedb")
	VenuesCollection = database.Collection("venues")
	AgentConfigsCollection = database.Collection("agentconfigs")
	ConversationsCollection = database.Collection("conversations")
	MessagesCollection = database.Collection("messages")
	ActionsCollection = database.Collection("actions")
	BookingsCollection = database.Collection("bookings")
	BlockedDatesCollection = database.Collection("blockeddates")
	NotificationsCollection = database.Collection("notifications")
}
