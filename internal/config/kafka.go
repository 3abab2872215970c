package config

import "time"

type Kafka struct {
	Addresses []string `env:"KAFKA_ADDRESSES,required" envSeparator:","`
	Group     string   `env:"KAFKA_GROUP" envDefault:"poxpos-worker"`
	ClientID  string   `env:"KAFKA_CLIENT_ID" envDefault:"poxpos"`

	// DeliveryTimeout bounds how long a relayed record may wait for acknowledgement.
	DeliveryTimeout time.Duration `env:"KAFKA_DELIVERY_TIMEOUT" envDefault:"10s"`
}
