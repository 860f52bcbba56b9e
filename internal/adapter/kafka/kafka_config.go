package kafka

import (
	"time"

	"github.com/IBM/sarama"
)

// NewGroup builds the consumer group that receives fulfillment status events
// from the backoffice. Offsets start at newest so a fresh deployment does not
// replay historical status changes over current order rows.
func NewGroup(brokers []string, groupID string) (sarama.ConsumerGroup, error) {
	cfg := sarama.NewConfig()
	cfg.ClientID = "storefront-api"
	cfg.Version = sarama.V2_6_0_0
	cfg.Consumer.Group.Rebalance.Strategy = sarama.BalanceStrategyRange
	cfg.Consumer.Offsets.Initial = sarama.OffsetNewest
	cfg.Net.DialTimeout = 5 * time.Second
	return sarama.NewConsumerGroup(brokers, groupID, cfg)
}
