package consumer

import (
	"fmt"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
)

type RedisConsumer struct {
	Connection rmq.Connection
	QueueName  string

	NumberConsumers int
	BatchSize       int

	Timeout time.Duration

	Consumer rmq.BatchConsumer
}

func (c *RedisConsumer) Setup() error {
	log.Info().Str("queue", c.QueueName).Msg("Starting consumers")

	queue, err := c.Connection.OpenQueue(c.QueueName)
	if err != nil {
		return err
	}
	if err := queue.StartConsuming(int64(c.NumberConsumers*c.BatchSize), 1*time.Second); err != nil {
		return err
	}

	for i := 0; i < c.NumberConsumers; i++ {
		log.Info().Msgf("Starting %s consumer %d", c.QueueName, i)

		if _, err := queue.AddBatchConsumer(fmt.Sprintf("%s-%d", c.QueueName, i), int64(c.BatchSize), c.Timeout, c.Consumer); err != nil {
			return err
		}
	}

	return nil
}

// LogStats writes the ready/unacked/rejected counts of every open queue.
func (c *RedisConsumer) LogStats() error {
	queues, err := c.Connection.GetOpenQueues()
	if err != nil {
		return err
	}

	stats, err := c.Connection.CollectStats(queues)
	if err != nil {
		return err
	}

	for name, queueStats := range stats.QueueStats {
		log.Info().
			Str("queue", name).
			Int64("ready", queueStats.ReadyCount).
			Int64("rejected", queueStats.RejectedCount).
			Int64("unacked", queueStats.UnackedCount()).
			Msg("Queue stats")
	}

	return nil
}
