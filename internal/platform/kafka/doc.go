// Package kafka publishes task lifecycle events to a Kafka topic using
// segmentio/kafka-go. It is only wired when brokers are configured.
package kafka
