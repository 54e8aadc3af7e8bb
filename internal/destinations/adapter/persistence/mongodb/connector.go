package mongodb

import (
	"context"
	"reflect"
	"sync"
	"time"

	"love-journey/internal/shared/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// destinationsCollection is the single logical collection this service owns.
const destinationsCollection = "destinations"

// connectTimeout bounds one connection attempt, not the overall bootstrap.
const connectTimeout = 10 * time.Second

// State is the connector's connection lifecycle state.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
)

// dialFunc opens and verifies a MongoDB session. Injectable for tests.
type dialFunc func(ctx context.Context, uri string) (*mongo.Client, error)

func defaultDial(ctx context.Context, uri string) (*mongo.Client, error) {
	// Free-form coordinate and attribute values must come back as bson.M,
	// not primitive.D, so they serialize to JSON objects.
	registry := bson.NewRegistry()
	registry.RegisterTypeMapEntry(bsontype.EmbeddedDocument, reflect.TypeOf(bson.M{}))

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetRegistry(registry))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

// Connector owns the single MongoDB session shared by all request handlers.
// Start retries the initial connection forever on a fixed delay instead of
// terminating the process; until it succeeds the service answers 503.
type Connector struct {
	uri        string
	dbName     string
	retryDelay time.Duration
	log        logger.Logger
	dial       dialFunc

	mu      sync.RWMutex
	state   State
	client  *mongo.Client
	db      *mongo.Database
	started bool

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewConnector creates a connector for the given MongoDB deployment.
func NewConnector(uri, dbName string, retryDelay time.Duration, log logger.Logger) *Connector {
	return &Connector{
		uri:        uri,
		dbName:     dbName,
		retryDelay: retryDelay,
		log:        log.WithComponent("mongo-connector"),
		dial:       defaultDial,
		state:      StateDisconnected,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Start launches the background connection loop. It returns immediately;
// readiness is observable via IsReady.
func (c *Connector) Start() {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.mu.Unlock()

	go c.connectLoop()
}

func (c *Connector) connectLoop() {
	defer close(c.done)

	attempt := 0
	for {
		attempt++
		c.setState(StateConnecting)

		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		client, err := c.dial(ctx, c.uri)
		cancel()

		if err == nil {
			c.mu.Lock()
			c.client = client
			c.db = client.Database(c.dbName)
			c.state = StateConnected
			c.mu.Unlock()

			c.log.WithFields(map[string]interface{}{
				"database": c.dbName,
				"attempt":  attempt,
			}).Info("MongoDB connection established")

			c.ensureIndexes()
			return
		}

		c.log.WithFields(map[string]interface{}{
			"attempt": attempt,
			"error":   err.Error(),
		}).Warnf("MongoDB connection failed, retrying in %s", c.retryDelay)

		select {
		case <-c.stop:
			return
		case <-time.After(c.retryDelay):
		}
	}
}

// ensureIndexes creates the created_at index that keeps ordered listing
// efficient. Failure is logged but non-fatal; the index may already exist.
func (c *Connector) ensureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	createdAtIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: 1}},
	}
	_, err := c.Database().Collection(destinationsCollection).Indexes().CreateOne(ctx, createdAtIndex)
	if err != nil {
		c.log.Warnf("Failed to ensure created_at index: %v", err)
	}
}

func (c *Connector) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// State returns the current lifecycle state.
func (c *Connector) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// IsReady reports whether the store connection has been established.
func (c *Connector) IsReady() bool {
	return c.State() == StateConnected
}

// Database returns the connected database handle, or nil before the first
// successful connection.
func (c *Connector) Database() *mongo.Database {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}

// Close stops the connection loop and disconnects the client if connected.
func (c *Connector) Close(ctx context.Context) error {
	c.stopOnce.Do(func() { close(c.stop) })

	c.mu.Lock()
	started := c.started
	c.mu.Unlock()
	if started {
		<-c.done
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateDisconnected
	if c.client == nil {
		return nil
	}
	client := c.client
	c.client = nil
	c.db = nil
	return client.Disconnect(ctx)
}
