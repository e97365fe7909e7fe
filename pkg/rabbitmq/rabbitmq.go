package rabbitmq

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/streadway/amqp"
)

const credentialQueue = "credential_mail_queue"

// Client holds the RabbitMQ connection and channel used for credential mail
// dispatch.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// CredentialMessage carries a freshly generated account credential from the
// user importer to the mail consumer.
type CredentialMessage struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NewClient creates a new RabbitMQ client and declares the credential queue.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		credentialQueue, // name
		true,            // durable (persists messages across broker restarts)
		false,           // delete when unused
		false,           // exclusive
		false,           // no-wait
		nil,             // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s: %w", credentialQueue, err)
	}

	log.Printf("RabbitMQ client connected and %s declared", credentialQueue)

	return &Client{
		conn:    conn,
		channel: ch,
	}, nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// SendCredentials enqueues a credential mail for the given address.
// Fire-and-forget: publish failures are logged and dropped so an import
// never fails because the broker was down.
func (c *Client) SendCredentials(email, password string) {
	body, err := json.Marshal(CredentialMessage{Email: email, Password: password})
	if err != nil {
		log.Printf("Failed to marshal credential message for %s: %v", email, err)
		return
	}

	err = c.channel.Publish(
		"",              // exchange: default exchange
		credentialQueue, // routing key: the queue name
		false,           // mandatory
		false,           // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		log.Printf("Warning: failed to publish credential mail for %s: %v", email, err)
	}
}

// ConsumeCredentialMessages starts a goroutine delivering queued credential
// messages to the handler. A handler error nacks and requeues the message.
func (c *Client) ConsumeCredentialMessages(handler func(msg CredentialMessage) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		credentialQueue, // queue
		"",              // consumer tag
		false,           // auto-ack: manual acknowledgement below
		false,           // exclusive
		false,           // no-local
		false,           // no-wait
		nil,             // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			var credential CredentialMessage
			if err := json.Unmarshal(msg.Body, &credential); err != nil {
				log.Printf("Dropping malformed credential message %d: %v", msg.DeliveryTag, err)
				if ackErr := msg.Ack(false); ackErr != nil {
					log.Printf("Error acking message %d: %v", msg.DeliveryTag, ackErr)
				}
				continue
			}
			if err := handler(credential); err != nil {
				log.Printf("Error processing credential message %d: %v", msg.DeliveryTag, err)
				if requeueErr := msg.Nack(false, true); requeueErr != nil {
					log.Printf("Error nacking message %d: %v", msg.DeliveryTag, requeueErr)
				}
			} else {
				if ackErr := msg.Ack(false); ackErr != nil {
					log.Printf("Error acking message %d: %v", msg.DeliveryTag, ackErr)
				}
			}
		}
	}()

	return nil
}
