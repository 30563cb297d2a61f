package queue

import (
	"context"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ExchangeName = "ex.crm"
	DLXName      = "ex.crm.dlx" // Dead Letter Exchange

	EventsQueueName  = "q.crm.events"
	EventsRoutingKey = "k.event"

	DrainQueueName  = "q.email.drain"
	DrainDLQName    = "q.email.drain.dlq"
	DrainRoutingKey = "k.email.drain"
)

type RabbitMQ struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewRabbitMQ(url string) (*RabbitMQ, error) {
	if url == "" {
		return nil, errors.New("RABBITMQ_URL não configurada")
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar no RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("falha ao abrir canal: %w", err)
	}

	if err := setupTopology(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("falha ao declarar topologia: %w", err)
	}

	return &RabbitMQ{Conn: conn, Ch: ch}, nil
}

// topologyDeclarer é o subconjunto de *amqp.Channel usado na declaração.
type topologyDeclarer interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
}

func setupTopology(ch topologyDeclarer) error {
	if err := ch.ExchangeDeclare(DLXName, "direct", true, false, false, false, nil); err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(DrainDLQName, true, false, false, false, nil); err != nil {
		return err
	}
	if err := ch.QueueBind(DrainDLQName, DrainRoutingKey, DLXName, false, nil); err != nil {
		return err
	}

	if err := ch.ExchangeDeclare(ExchangeName, "direct", true, false, false, false, nil); err != nil {
		return err
	}

	// drenagem que falhou vai para a DLQ, sem requeue
	drainArgs := amqp.Table{
		"x-dead-letter-exchange":    DLXName,
		"x-dead-letter-routing-key": DrainRoutingKey,
	}
	if _, err := ch.QueueDeclare(DrainQueueName, true, false, false, false, drainArgs); err != nil {
		return err
	}
	if err := ch.QueueBind(DrainQueueName, DrainRoutingKey, ExchangeName, false, nil); err != nil {
		return err
	}

	if _, err := ch.QueueDeclare(EventsQueueName, true, false, false, false, nil); err != nil {
		return err
	}
	return ch.QueueBind(EventsQueueName, EventsRoutingKey, ExchangeName, false, nil)
}

// PingContext serve o /health.
func (r *RabbitMQ) PingContext(_ context.Context) error {
	if r.Conn == nil || r.Conn.IsClosed() {
		return errors.New("conexão RabbitMQ fechada")
	}
	if r.Ch == nil || r.Ch.IsClosed() {
		return errors.New("canal RabbitMQ fechado")
	}
	return nil
}

func (r *RabbitMQ) Close() error {
	if r.Ch != nil {
		r.Ch.Close()
	}
	if r.Conn != nil {
		return r.Conn.Close()
	}
	return nil
}
