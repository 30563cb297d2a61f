package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/logger"
)

// MessageWriter é o que o Producer usa do *kafka.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	writer  MessageWriter
	brokers []string
	topic   string
}

func NewProducer(brokers []string, topic string) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS não configurado")
	}
	if topic == "" {
		return nil, errors.New("KAFKA_TOPIC não configurado")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{}, // mesmo contato, mesma partição
		RequiredAcks: kafka.RequireAll,
		Async:        false,
		BatchSize:    1,
		BatchTimeout: 10 * time.Millisecond,
	}

	return &Producer{writer: writer, brokers: brokers, topic: topic}, nil
}

func newProducerWithWriter(w MessageWriter, topic string) *Producer {
	return &Producer{writer: w, topic: topic}
}

// PublishEvent usa o contato como chave; sem contato, o event_id.
func (p *Producer) PublishEvent(ctx context.Context, msg entity.EventMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	key := msg.ContactID
	if key == "" {
		key = msg.EventID
	}

	message := kafka.Message{
		Key:   []byte(key),
		Value: body,
		Time:  msg.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-name", Value: []byte(msg.Name)},
			{Key: "source", Value: []byte(msg.Source)},
		},
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("falha ao publicar no Kafka: %w", err)
	}

	logger.WithFields(map[string]interface{}{
		"event_id": msg.EventID,
		"topic":    p.topic,
	}).Debug("evento publicado")
	return nil
}

// PingContext abre e fecha uma conexão com o primeiro broker.
func (p *Producer) PingContext(ctx context.Context) error {
	if len(p.brokers) == 0 {
		return errors.New("nenhum broker configurado")
	}
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", p.brokers[0])
	if err != nil {
		return err
	}
	return conn.Close()
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
