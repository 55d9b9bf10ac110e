package webserver

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"f1strategydashboard/pkg/openf1"
	"f1strategydashboard/pkg/pubsub"
)

const ResourcesDir = "./resources"

// Fetcher is the slice of the OpenF1 client the handlers need. Tests plug
// in a fake.
type Fetcher interface {
	Meetings(ctx context.Context, year int, country string) ([]openf1.Meeting, error)
	Sessions(ctx context.Context, meetingKey int) ([]openf1.Session, error)
	Laps(ctx context.Context, sessionKey int) ([]openf1.Lap, error)
	Stints(ctx context.Context, sessionKey int) ([]openf1.Stint, error)
	PitStops(ctx context.Context, sessionKey int) ([]openf1.PitStop, error)
	Drivers(ctx context.Context, sessionKey int) ([]openf1.Driver, error)
}

type Manager struct {
	r       *mux.Router
	addr    string
	fetcher Fetcher
	resets  *pubsub.PubSub[string]
}

func NewManager(addr string, fetcher Fetcher, resets *pubsub.PubSub[string]) *Manager {
	m := &Manager{
		r:       mux.NewRouter(),
		addr:    addr,
		fetcher: fetcher,
		resets:  resets,
	}

	m.routes()
	return m
}

func (m *Manager) router() *mux.Router {
	return m.r
}

func (m *Manager) routes() {
	api := m.r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/years", m.handleYears).Methods("GET")
	api.HandleFunc("/countries", m.handleCountries).Methods("GET")
	api.HandleFunc("/meetings", m.handleMeetings).Methods("GET")
	api.HandleFunc("/sessions", m.handleSessions).Methods("GET")
	api.HandleFunc("/charts/laps", m.handleLapsChart).Methods("GET")
	api.HandleFunc("/charts/stints", m.handleStintsChart).Methods("GET")
	api.HandleFunc("/charts/pits", m.handlePitsChart).Methods("GET")
	api.HandleFunc("/summary", m.handleSummary).Methods("GET")

	m.r.HandleFunc("/ws", m.handleWebSocket)

	fs := http.FileServer(http.Dir(ResourcesDir))
	resStr := "/resources/"
	m.r.PathPrefix(resStr).Handler(http.StripPrefix(resStr, fs))
	m.r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, ResourcesDir+"/index.html")
	})
}

func (m *Manager) Serve() {
	srv := &http.Server{
		Addr: m.addr,
		// Good practice to set timeouts to avoid Slowloris attacks.
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      m.router(),
	}

	// Run our server in a goroutine so that it doesn't block.
	go func() {
		log.Printf("webserver listening on %s\n", m.addr)
		if err := srv.ListenAndServe(); err != nil {
			log.Println(err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	// Block until we receive our signal.
	<-c

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	// Doesn't block if no connections, but will otherwise wait
	// until the timeout deadline.
	srv.Shutdown(ctx)
	log.Println("webserver shutting down")
}
