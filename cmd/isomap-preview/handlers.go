package main

import (
	"bufio"
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/websocket"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!doctype html>
<html><head><title>isomap preview</title></head>
<body>
<h1>isomap preview</h1>
<div id="status">connecting...</div>
<script>
var ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
ws.onmessage = function(ev) {
	var p = JSON.parse(ev.data);
	document.getElementById("status").textContent =
		p.Status + " (" + p.Done + "/" + p.Total + ")" + (p.Finished ? " done" : "");
};
</script>
</body></html>`))

func indexHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, nil); err != nil {
		log.Printf("index template: %v", err)
	}
}

// upgrader mirrors WebChunk's ws.go: short handshake timeout, origin checks
// disabled because this is a local preview tool, compression on since tile
// progress updates are small and frequent.
var upgrader = websocket.Upgrader{
	HandshakeTimeout:  2 * time.Second,
	CheckOrigin:       func(r *http.Request) bool { return true },
	EnableCompression: true,
}

func wsProgressHandler(b *ProgressBroadcaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("websocket upgrade: %v", err)
			return
		}
		defer conn.Close()

		ch := b.Subscribe()
		defer b.Unsubscribe(ch)

		// Drain client reads so a dropped connection is noticed promptly;
		// this handler never expects incoming messages.
		go func() {
			for {
				if _, _, err := conn.NextReader(); err != nil {
					conn.Close()
					return
				}
			}
		}()

		for p := range ch {
			if err := conn.WriteJSON(p); err != nil {
				return
			}
		}
	}
}

// pollProgressFile tails a JSON-lines progress file a companion isomap run
// appends to, republishing each line so preview clients don't need direct
// access to the renderer's own process.
func pollProgressFile(path string, b *ProgressBroadcaster, stop <-chan struct{}) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()
	var offset int64
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			f, err := os.Open(path)
			if err != nil {
				continue
			}
			if _, err := f.Seek(offset, 0); err != nil {
				f.Close()
				continue
			}
			scanner := bufio.NewScanner(f)
			for scanner.Scan() {
				var p RenderProgress
				if err := json.Unmarshal(scanner.Bytes(), &p); err != nil {
					continue
				}
				b.Publish(p)
			}
			if pos, err := f.Seek(0, 1); err == nil {
				offset = pos
			}
			f.Close()
		}
	}
}
