package ingestion

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"eldercare-monitor/internal/logger"
	pkgmqtt "eldercare-monitor/pkg/mqtt"
)

// MQTTIngestionConfig describes the topic and MQTT connection parameters.
type MQTTIngestionConfig struct {
	ClientConfig   *pkgmqtt.Config
	WellbeingTopic string
	QoS            byte
}

// MQTTIngestionClient wires wellbeing snapshots from MQTT into the
// ingestion processor.
type MQTTIngestionClient struct {
	cfg       *MQTTIngestionConfig
	client    *pkgmqtt.Client
	processor *Processor

	mu            sync.Mutex
	started       bool
	subscriptions []string
}

func NewMQTTIngestionClient(cfg *MQTTIngestionConfig, processor *Processor) (*MQTTIngestionClient, error) {
	if cfg == nil || cfg.ClientConfig == nil {
		return nil, errors.New("mqtt ingestion config is not configured")
	}
	if processor == nil {
		return nil, errors.New("processor is required")
	}

	client := pkgmqtt.NewClient(cfg.ClientConfig, logger.Logger)
	return &MQTTIngestionClient{
		cfg:       cfg,
		client:    client,
		processor: processor,
	}, nil
}

// Start establishes the MQTT connection and subscribes to the topic.
func (c *MQTTIngestionClient) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return nil
	}

	if c.cfg.WellbeingTopic == "" {
		return errors.New("no MQTT topic configured for ingestion")
	}

	if err := c.client.Connect(); err != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}

	if err := c.client.Subscribe(c.cfg.WellbeingTopic, c.cfg.QoS, c.handleWellbeingMessage); err != nil {
		c.client.Disconnect()
		return fmt.Errorf("subscribe failed for topic %s: %w", c.cfg.WellbeingTopic, err)
	}
	c.subscriptions = append(c.subscriptions, c.cfg.WellbeingTopic)

	c.started = true
	return nil
}

// Stop unsubscribes and disconnects from the broker.
func (c *MQTTIngestionClient) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		return
	}

	if len(c.subscriptions) > 0 {
		if err := c.client.Unsubscribe(c.subscriptions...); err != nil {
			logger.Warn("Failed to unsubscribe from MQTT topics", zap.Error(err))
		}
	}

	c.client.Disconnect()
	c.started = false
	c.subscriptions = nil
}

// handleWellbeingMessage decodes a snapshot, validates it and hands it to
// the processor.
func (c *MQTTIngestionClient) handleWellbeingMessage(_ string, payload []byte) {
	snapshot, err := ParseWellbeingSnapshot(payload)
	if err != nil {
		logger.Warn("Invalid wellbeing payload", zap.Error(err))
		return
	}

	c.processor.ProcessSnapshot(snapshot)
}
