package broker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrPoolClosed is returned by Get after Close.
var ErrPoolClosed = errors.New("channel pool closed")

// channel is the subset of *amqp.Channel used for publishing.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

// ChannelPool keeps a fixed set of AMQP channels over one connection.
type ChannelPool struct {
	open      func() (channel, error)
	closeConn func() error
	channels  chan channel
	logger    *slog.Logger

	mu     sync.Mutex
	closed bool
}

// Dial connects to RabbitMQ and pre-opens size channels, each with the durable
// queue declared.
func Dial(url, queue string, size int, logger *slog.Logger) (*ChannelPool, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect rabbitmq: %w", err)
	}

	open := func() (channel, error) {
		ch, err := conn.Channel()
		if err != nil {
			return nil, err
		}
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			_ = ch.Close()
			return nil, fmt.Errorf("declare queue: %w", err)
		}
		return ch, nil
	}

	pool, err := newChannelPool(open, conn.Close, size, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("rabbitmq channel pool ready", slog.String("queue", queue), slog.Int("channels", size))
	return pool, nil
}

func newChannelPool(open func() (channel, error), closeConn func() error, size int, logger *slog.Logger) (*ChannelPool, error) {
	if size <= 0 {
		size = 1
	}
	pool := &ChannelPool{
		open:      open,
		closeConn: closeConn,
		channels:  make(chan channel, size),
		logger:    logger,
	}
	for i := 0; i < size; i++ {
		ch, err := open()
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("open channel %d: %w", i, err)
		}
		pool.channels <- ch
	}
	return pool, nil
}

// Get waits for a free channel, reopening it if the broker closed it.
func (p *ChannelPool) Get(ctx context.Context) (channel, error) {
	select {
	case ch, ok := <-p.channels:
		if !ok {
			return nil, ErrPoolClosed
		}
		if ch.IsClosed() {
			fresh, err := p.open()
			if err != nil {
				p.release()
				return nil, fmt.Errorf("reopen channel: %w", err)
			}
			return fresh, nil
		}
		return ch, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Put returns ch to the pool. A closed channel gives its slot back so the next
// Get opens a replacement.
func (p *ChannelPool) Put(ch channel) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		_ = ch.Close()
		return
	}
	p.channels <- ch
}

// release frees a slot whose channel could not be reopened.
func (p *ChannelPool) release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.channels <- closedChannel{}
}

// Close closes all idle channels and the connection.
func (p *ChannelPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true

	close(p.channels)
	for ch := range p.channels {
		_ = ch.Close()
	}
	if p.closeConn != nil {
		if err := p.closeConn(); err != nil {
			p.logger.Warn("close rabbitmq connection", slog.String("error", err.Error()))
		}
	}
}

// closedChannel holds a pool slot until a real channel can be reopened.
type closedChannel struct{}

func (closedChannel) PublishWithContext(context.Context, string, string, bool, bool, amqp.Publishing) error {
	return amqp.ErrClosed
}
func (closedChannel) IsClosed() bool { return true }
func (closedChannel) Close() error   { return nil }
