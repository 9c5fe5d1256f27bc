package kafka_config

const (
	EnvKafkaEnabled = "KAFKA_ENABLED"
	EnvKafkaBrokers = "KAFKA_BROKERS"

	EnvKafkaProducerMaxAttempts  = "KAFKA_PRODUCER_MAX_ATTEMPTS"
	EnvKafkaProducerBatchTimeout = "KAFKA_PRODUCER_BATCH_TIMEOUT"
	EnvKafkaProducerRequireAcks  = "KAFKA_PRODUCER_REQUIRE_ACKS"

	EnvKafkaConsumerMinBytes       = "KAFKA_CONSUMER_MIN_BYTES"
	EnvKafkaConsumerMaxBytes       = "KAFKA_CONSUMER_MAX_BYTES"
	EnvKafkaConsumerMaxWait        = "KAFKA_CONSUMER_MAX_WAIT"
	EnvKafkaConsumerCommitInterval = "KAFKA_CONSUMER_COMMIT_INTERVAL"
)
