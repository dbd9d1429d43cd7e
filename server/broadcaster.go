package server

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"
)

type event struct {
	name string
	data string
}

// broadcaster fans server-sent events out to every connected editor.
type broadcaster struct {
	m       sync.Mutex
	clients []chan<- event
}

func newBroadcaster() *broadcaster {
	return &broadcaster{
		clients: make([]chan<- event, 0),
	}
}

func (b *broadcaster) addClient(ch chan<- event) {
	b.m.Lock()
	b.clients = append(b.clients, ch)
	b.m.Unlock()
}

func (b *broadcaster) removeClient(ch chan<- event) {
	b.m.Lock()
	defer b.m.Unlock()

	idx := slices.Index(b.clients, ch)
	if idx == -1 {
		return
	}
	close(b.clients[idx])
	b.clients = slices.Delete(b.clients, idx, idx+1)
}

func (b *broadcaster) clientCount() int {
	b.m.Lock()
	defer b.m.Unlock()
	return len(b.clients)
}

// broadcast drops the event for clients that are not keeping up.
func (b *broadcaster) broadcast(name, data string) {
	b.m.Lock()
	for _, ch := range b.clients {
		select {
		case ch <- event{name: name, data: data}:
		default:
		}
	}
	b.m.Unlock()
}

func (b *broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	msgCh := make(chan event, 1)
	b.addClient(msgCh)
	defer b.removeClient(msgCh)

	notify := r.Context().Done()

	w.Write([]byte(":ok\n\n"))
	flusher.Flush()

	for {
		select {
		case <-notify:
			return
		case ev := <-msgCh:
			fmt.Fprintf(w, "event: %s\n", ev.name)
			for line := range strings.SplitSeq(ev.data, "\n") {
				fmt.Fprintf(w, "data: %s\n", line)
			}
			w.Write([]byte("\n"))
			flusher.Flush()
		}
	}
}

var _ http.Handler = (*broadcaster)(nil)
