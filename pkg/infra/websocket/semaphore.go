package websocket

import "github.com/sportsfeed/contentguard/pkg/infra/prometheus"

// Semaphore caps concurrent chat connections and mirrors the count into the
// connections gauge.
type Semaphore struct {
	connections chan struct{}
}

func NewSemaphore(maxConnections int) *Semaphore {
	return &Semaphore{
		connections: make(chan struct{}, maxConnections),
	}
}

func (s *Semaphore) Acquire() bool {
	select {
	case s.connections <- struct{}{}:
		prometheus.ChatConnections.Inc()
		return true
	default:
		return false
	}
}

func (s *Semaphore) Release() {
	select {
	case <-s.connections:
		prometheus.ChatConnections.Dec()
	default:
	}
}

func (s *Semaphore) GetCurrentConnections() int {
	return len(s.connections)
}
