package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"tabletime/pkg/logger"
)

// Client holds the backing-service connections the server opened. Nil
// fields were not configured.
type Client struct {
	Mongo *mongo.Client
	Redis *redis.Client
}

func NewClient() *Client {
	return &Client{}
}

func (c *Client) SetMongo(log *logger.Logger, mongoURI string, mongoConnTimeout time.Duration) {
	client, err := NewMongoClient(context.Background(), mongoURI, mongoConnTimeout)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	log.Info("Successfully connected to MongoDB")
	c.Mongo = client
}

func (c *Client) SetRedis(log *logger.Logger, redisURL string, connTimeout time.Duration) {
	client, err := NewRedisClient(context.Background(), redisURL, connTimeout)
	if err != nil {
		log.Fatal("Failed to connect to Redis", "error", err)
	}

	log.Info("Successfully connected to Redis")
	c.Redis = client
}

func (c *Client) Close(ctx context.Context) error {
	var errs []error
	if c.Mongo != nil {
		if err := c.Mongo.Disconnect(ctx); err != nil {
			errs = append(errs, fmt.Errorf("disconnect mongo: %w", err))
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	return errors.Join(errs...)
}
