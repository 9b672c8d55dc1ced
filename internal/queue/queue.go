package queue

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/streadway/amqp"
)

// ClickEventsTopic is the topic (and RabbitMQ queue name) click events go to.
const ClickEventsTopic = "click_events"

// ClickEvent is the payload published after every recorded click.
type ClickEvent struct {
	TargetID   int       `json:"target_id"`
	CampaignID int       `json:"campaign_id"`
	ClickedAt  time.Time `json:"clicked_at"`
}

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue is an in-process queue with retry
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]func(payload any) error),
	}
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish sends a message to all subscribers
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	job := JobPayload{
		Payload:    payload,
		RetryCount: 0,
		MaxRetries: 3,
	}

	for _, handler := range handlers {
		go q.processJob(handler, job)
	}

	return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler func(payload any) error, job JobPayload) {
	for job.RetryCount <= job.MaxRetries {
		err := handler(job.Payload)
		if err == nil {
			return // ACK
		}

		job.RetryCount++
		log.Printf("Job failed (attempt %d/%d): %+v, error: %v\n", job.RetryCount, job.MaxRetries, job.Payload, err)

		if job.RetryCount > job.MaxRetries {
			log.Printf("Job permanently failed after %d attempts: %+v\n", job.MaxRetries, job.Payload)
			return // No requeue
		}

		// Exponential backoff before retry
		time.Sleep(time.Duration(job.RetryCount*500) * time.Millisecond)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// StartClickEventForwarder bridges in-process click events to a durable
// RabbitMQ queue for downstream consumers (see cmd/worker).
func StartClickEventForwarder(q Queue, amqpURL string) {
	go func() {
		conn, err := amqp.Dial(amqpURL)
		if err != nil {
			log.Println("⚠️ Failed to connect to RabbitMQ, click events stay in-process:", err)
			return
		}

		ch, err := conn.Channel()
		if err != nil {
			log.Println("⚠️ Failed to open queue channel:", err)
			conn.Close()
			return
		}

		declared, err := ch.QueueDeclare(
			ClickEventsTopic,
			true,
			false,
			false,
			false,
			nil,
		)
		if err != nil {
			log.Println("⚠️ Failed to declare queue:", err)
			ch.Close()
			conn.Close()
			return
		}

		err = q.Subscribe(ClickEventsTopic, func(payload any) error {
			evt, ok := payload.(ClickEvent)
			if !ok {
				log.Println("⚠️ Invalid payload type, expected ClickEvent")
				return nil // no retry
			}

			body, err := json.Marshal(evt)
			if err != nil {
				return err
			}
			return ch.Publish(
				"",
				declared.Name,
				false,
				false,
				amqp.Publishing{
					ContentType: "application/json",
					Body:        body,
				},
			)
		})
		if err != nil {
			log.Println("⚠️ Failed to subscribe click event forwarder:", err)
		}
	}()
}

// StartClickEventLogger consumes click events locally when no broker is
// configured, so publishes always have a subscriber.
func StartClickEventLogger(q Queue) {
	err := q.Subscribe(ClickEventsTopic, func(payload any) error {
		evt, ok := payload.(ClickEvent)
		if !ok {
			log.Println("⚠️ Invalid payload type, expected ClickEvent")
			return nil
		}
		log.Printf("📩 Click recorded: campaign=%d target=%d at=%s\n",
			evt.CampaignID, evt.TargetID, evt.ClickedAt.Format(time.RFC3339))
		return nil
	})
	if err != nil {
		log.Println("⚠️ Failed to subscribe click event logger:", err)
	}
}
