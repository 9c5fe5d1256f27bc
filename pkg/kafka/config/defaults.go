package kafka_config

import "time"

const (
	DefaultKafkaEnabled = false
	DefaultKafkaBrokers = "localhost:9092"

	DefaultProducerMaxAttempts  = 3
	DefaultProducerBatchTimeout = 10 * time.Millisecond
	DefaultProducerRequireAcks  = -1 // Require all replicas

	DefaultConsumerMinBytes       = 1
	DefaultConsumerMaxBytes       = 10 * 1024 * 1024 // 10MB
	DefaultConsumerMaxWait        = 500 * time.Millisecond
	DefaultConsumerCommitInterval = 1 * time.Second
)
