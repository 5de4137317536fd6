package redis_client

import (
	"context"
	"strconv"

	"github.com/adjust/rmq/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/travigo/subway/pkg/util"
)

var Client *redis.Client
var QueueConnection rmq.Connection

const defaultConnectionAddress = "localhost:6379"
const defaultDatabase = 0
const queueConnectionTag = "subway"

func Connect() error {
	env := util.GetEnvironmentVariables()

	database := defaultDatabase
	if env["TRAVIGO_REDIS_DATABASE"] != "" {
		n, err := strconv.Atoi(env["TRAVIGO_REDIS_DATABASE"])
		if err != nil {
			return err
		}
		database = n
	}

	client := redis.NewClient(&redis.Options{
		Addr:     util.GetEnvironmentVariable("TRAVIGO_REDIS_ADDRESS", defaultConnectionAddress),
		Password: env["TRAVIGO_REDIS_PASSWORD"],
		DB:       database,
	})

	return Setup(client)
}

// Setup pings an already built client and opens the queue connection on top of it.
func Setup(client *redis.Client) error {
	if err := client.Ping(context.Background()).Err(); err != nil {
		return err
	}

	errChan := make(chan error, 10)
	go func() {
		for err := range errChan {
			log.Error().Err(err).Msg("Redis queue error")
		}
	}()

	queueConnection, err := rmq.OpenConnectionWithRedisClient(queueConnectionTag, client, errChan)
	if err != nil {
		return err
	}

	Client = client
	QueueConnection = queueConnection

	return nil
}
