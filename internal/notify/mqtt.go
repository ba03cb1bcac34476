// Package notify fans domain events out to subscribers over MQTT.
package notify

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

const publishTimeout = 5 * time.Second

type Publisher interface {
	Publish(topic string, event any) error
}

// MQTT connection handler
var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("connected to MQTT broker")
}

// MQTT connection lost handler
var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Warn().Err(err).Msg("MQTT connection lost")
}

type MQTTPublisher struct {
	client mqtt.Client
}

// NewMQTTPublisher connects to brokerURL. The client reconnects on its own
// after a lost connection.
func NewMQTTPublisher(brokerURL, clientID string) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	return &MQTTPublisher{client: client}, nil
}

// Publish sends event as JSON with QoS 1.
func (p *MQTTPublisher) Publish(topic string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event for %s: %w", topic, err)
	}

	token := p.client.Publish(topic, 1, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish to %s timed out", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	log.Debug().Str("topic", topic).Msg("event published")
	return nil
}

func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
	log.Info().Msg("MQTT client disconnected")
}

// Nop drops every event. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(string, any) error { return nil }
