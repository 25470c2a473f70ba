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
	ToursCollection        *mongo.Collection
	FormsCollection        *mongo.Collection
	InventoryCollection    *mongo.Collection
	LiveSessionsCollection *mongo.Collection
	UserCollection         *mongo.Collection
	MediaCollection        *mongo.Collection
	Client                 *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	ToursCollection = Client.Database("tourdb").Collection("tours")
	FormsCollection = Client.Database("tourdb").Collection("forms")
	InventoryCollection = Client.Database("tourdb").Collection("inventory")
	LiveSessionsCollection = Client.Database("tourdb").Collection("livesessions")
	UserCollection = Client.Database("tourdb").Collection("users")
	MediaCollection = Client.Database("tourdb").Collection("media")
}
