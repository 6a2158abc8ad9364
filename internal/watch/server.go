package watch

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

// Dashboard serves the single-page live-progress view over http and a
// websocket, adapted from the teacher's tabular/server.Server -- which
// documents the same single-client scope: useful for watching one run
// develop, not a general multi-viewer service. A second browser tab
// connecting mid-run simply starts receiving whatever Snapshot the Tracker
// next emits.
type Dashboard struct {
	addr    string
	tracker *Tracker
}

// NewDashboard builds a Dashboard that relays tracker's Snapshot stream to
// whichever browser tab connects.
func NewDashboard(addr string, tracker *Tracker) *Dashboard {
	return &Dashboard{addr: addr, tracker: tracker}
}

// Serve blocks, serving the index page and websocket endpoint until ctx is
// cancelled.
func (d *Dashboard) Serve(ctx context.Context) error {
	r := mux.NewRouter()
	r.HandleFunc("/", d.serveIndex).Methods(http.MethodGet)
	r.HandleFunc("/ws", d.serveWebsocket)

	srv := &http.Server{Addr: d.addr, Handler: r}
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("watch: serve: %w", err)
	}
	return nil
}

// serveWebsocket publishes tracker snapshots to the client via websocket.
func (d *Dashboard) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	updates := d.tracker.Stream(r.Context().Done())

	cli, err := newClient(updates, w, r)
	if err != nil {
		log.Println("watch: upgrade:", err)
		return
	}
	defer cli.ws.close()

	if err := cli.sync(); err != nil && !isClosure(err) {
		log.Println("watch:", err)
	}
}

func (d *Dashboard) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	_, _ = w.Write([]byte(indexHTML))
}

const indexHTML = `<!doctype html>
<html>
<head><title>craftsolve</title></head>
<body>
<pre id="out">connecting...</pre>
<script>
const out = document.getElementById("out");
const ws = new WebSocket("ws://" + location.host + "/ws");
ws.onmessage = (ev) => {
	out.textContent = JSON.stringify(JSON.parse(ev.data), null, 2);
};
ws.onclose = () => { out.textContent += "\ndisconnected"; };
</script>
</body>
</html>`
