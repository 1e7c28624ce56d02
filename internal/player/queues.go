package player

import "github.com/llehouerou/wavplay/internal/queue"

// Queues connects the control side and the engine.
//
// Commands is written only by the control goroutine and read only by the
// audio callback; Events is the reverse.
type Queues struct {
	Commands *queue.SPSC[Command]
	Events   *queue.SPSC[Event]
}

// NewQueues returns an empty pair of queues.
func NewQueues() Queues {
	return Queues{
		Commands: queue.New[Command](),
		Events:   queue.New[Event](),
	}
}
