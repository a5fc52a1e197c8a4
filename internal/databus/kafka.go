package databus

import (
	"strings"

	"gopkg.in/Shopify/sarama.v1"
	"paylink.io/paylink-social/pkg/errors"
	"paylink.io/paylink-social/pkg/log"
)

type Event interface {
	Serialize() []byte
	Topic() string
}

type DataBus struct {
	producer sarama.SyncProducer
}

var producer *DataBus

func InitDataBus(host string) {
	if host == "" {
		log.Warn("kafka server not configured, link audit events disabled.")
		return
	}
	hosts := strings.Split(host, ",")
	conf := sarama.NewConfig()
	conf.Producer.Return.Successes = true
	if p, err := sarama.NewSyncProducer(hosts, conf); err != nil {
		log.Fatalf("Failed to create producer: %s", err)
	} else {
		producer = &DataBus{producer: p}
	}
	log.Info("Kafka producer initialized...")
}

func (db *DataBus) PublishRaw(topic string, raw []byte) error {
	if len(raw) == 0 {
		return nil
	}
	_, _, err := db.producer.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.StringEncoder(raw)})
	if err != nil {
		return errors.WrapfAndReport(err, "produce message to %v", topic)
	}
	return nil
}

func (db *DataBus) Publish(e Event) (err error) {
	return db.PublishRaw(e.Topic(), e.Serialize())
}

// TryPublish swallows the audit trail when kafka is absent or failing; link
// state is already committed by the time events go out.
func TryPublish(e Event) {
	if producer == nil {
		return
	}
	if err := producer.Publish(e); err != nil {
		log.Error(err)
	}
}
