package server

import (
	"context"
	"log"
	"sync"

	"github.com/pairchat/go-pairchat/internal/database"
	"github.com/pairchat/go-pairchat/internal/stats"
)

type stopReq struct {
	done chan struct{}
}

// ChatServer owns the set of live connections and the room membership
// registry shared by their handlers.
type ChatServer struct {
	log            *log.Logger
	db             database.PairChatRepository
	stats          stats.StatsProvider
	registry       *Registry
	clients        map[*Client]struct{}
	clientsLock    sync.Mutex
	RegisterChan   chan *Client
	deRegisterChan chan *Client
	stop           chan stopReq
}

func NewChatServer(logger *log.Logger, db database.PairChatRepository, sp stats.StatsProvider) (*ChatServer, error) {
	cs := &ChatServer{
		log:            logger,
		db:             db,
		stats:          sp,
		registry:       NewRegistry(),
		clients:        make(map[*Client]struct{}),
		RegisterChan:   make(chan *Client),
		deRegisterChan: make(chan *Client),
		stop:           make(chan stopReq),
	}

	for _, name := range []string{
		stats.ActiveConnections,
		stats.TotalConnections,
		stats.TotalMessages,
		stats.TotalJoins,
	} {
		sp.RegisterMetric(name)
	}

	return cs, nil
}

func (cs *ChatServer) Run() {
	for {
		select {
		case client := <-cs.RegisterChan:
			cs.log.Printf("adding connection %q", client.session)
			cs.addClient(client)
			cs.stats.Incr(stats.ActiveConnections)
			cs.stats.Incr(stats.TotalConnections)
		case client := <-cs.deRegisterChan:
			cs.log.Printf("removing connection %q", client.session)
			cs.removeClient(client)
			cs.stats.Decr(stats.ActiveConnections)
		case req := <-cs.stop:
			cs.log.Println("stopping clients")
			cs.clientsLock.Lock()
			for c := range cs.clients {
				c.stopClient()
			}
			cs.clientsLock.Unlock()

			close(req.done)
			return
		}
	}
}

func (cs *ChatServer) RegisterClient(c *Client) {
	cs.RegisterChan <- c
}

func (cs *ChatServer) addClient(c *Client) {
	cs.clientsLock.Lock()
	defer cs.clientsLock.Unlock()
	cs.clients[c] = struct{}{}
}

func (cs *ChatServer) removeClient(c *Client) {
	cs.clientsLock.Lock()
	defer cs.clientsLock.Unlock()
	delete(cs.clients, c)
}

func (cs *ChatServer) Shutdown(ctx context.Context) error {
	cs.log.Println("received shutdown signal")

	req := stopReq{done: make(chan struct{})}
	select {
	case cs.stop <- req:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-req.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
