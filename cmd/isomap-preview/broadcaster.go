package main

import "sync"

// RenderProgress is one status update for a render still in flight, pushed
// to every subscribed websocket client.
type RenderProgress struct {
	Done, Total int
	Status      string
	Finished    bool
}

// ProgressBroadcaster fans a single stream of RenderProgress updates out to
// any number of websocket subscribers, adapted from WebChunk's own
// stackoverflow-derived broadcaster: a select loop over subscribe/unsubscribe/
// publish channels instead of a mutex-guarded slice of subscribers, so
// Publish never blocks on a slow reader.
type ProgressBroadcaster struct {
	stopCh    chan struct{}
	publishCh chan RenderProgress
	subCh     chan chan RenderProgress
	unsubCh   chan chan RenderProgress
	stopOnce  sync.Once
}

func NewProgressBroadcaster() *ProgressBroadcaster {
	return &ProgressBroadcaster{
		stopCh:    make(chan struct{}),
		publishCh: make(chan RenderProgress, 1),
		subCh:     make(chan chan RenderProgress, 1),
		unsubCh:   make(chan chan RenderProgress, 1),
	}
}

// Run drives the broadcaster's select loop until Stop is called; run it in
// its own goroutine.
func (b *ProgressBroadcaster) Run() {
	subs := map[chan RenderProgress]struct{}{}
	var last RenderProgress
	for {
		select {
		case <-b.stopCh:
			return
		case msgCh := <-b.subCh:
			subs[msgCh] = struct{}{}
			msgCh <- last
		case msgCh := <-b.unsubCh:
			delete(subs, msgCh)
		case msg := <-b.publishCh:
			last = msg
			for msgCh := range subs {
				select {
				case msgCh <- msg:
				default:
				}
			}
		}
	}
}

func (b *ProgressBroadcaster) Stop() {
	b.stopOnce.Do(func() { close(b.stopCh) })
}

func (b *ProgressBroadcaster) Subscribe() chan RenderProgress {
	ch := make(chan RenderProgress, 16)
	b.subCh <- ch
	return ch
}

func (b *ProgressBroadcaster) Unsubscribe(ch chan RenderProgress) {
	b.unsubCh <- ch
}

func (b *ProgressBroadcaster) Publish(p RenderProgress) {
	select {
	case b.publishCh <- p:
	default:
	}
}
