package main

import (
	"strconv"
	"sync"
	"time"

	"github.com/miekg/dns"
)

type Server struct {
	host     string
	port     int
	rTimeout time.Duration
	wTimeout time.Duration

	mu        sync.Mutex
	listeners []*dns.Server
}

func NewServer(ss DNSServerSettings) *Server {
	return &Server{
		host:     ss.Host,
		port:     ss.Port,
		rTimeout: time.Duration(ss.ReadTimeout) * time.Second,
		wTimeout: time.Duration(ss.WriteTimeout) * time.Second,
	}
}

func (s *Server) Addr() string {
	return s.host + ":" + strconv.Itoa(s.port)
}

// listener returns a dns.Server for net ("udp" or "tcp") routing every
// question to handler.
func (s *Server) listener(net string, handler dns.HandlerFunc) *dns.Server {
	mux := dns.NewServeMux()
	mux.HandleFunc(".", handler)

	ds := &dns.Server{
		Addr:         s.Addr(),
		Net:          net,
		Handler:      mux,
		ReadTimeout:  s.rTimeout,
		WriteTimeout: s.wTimeout,
	}
	if net == "udp" {
		ds.UDPSize = dns.MaxMsgSize
	}
	return ds
}

func (s *Server) Run(handler *TrieHandler) {
	udp := s.listener("udp", handler.DoUDP)
	tcp := s.listener("tcp", handler.DoTCP)

	s.mu.Lock()
	s.listeners = append(s.listeners, udp, tcp)
	s.mu.Unlock()

	go s.start(udp)
	go s.start(tcp)
}

func (s *Server) start(ds *dns.Server) {
	logger.Info("Start %s listener on %s", ds.Net, s.Addr())
	if err := ds.ListenAndServe(); err != nil {
		logger.Error("Start %s listener on %s failed:%s", ds.Net, s.Addr(), err.Error())
	}
}

// Shutdown stops every listener started by Run.
func (s *Server) Shutdown() {
	s.mu.Lock()
	listeners := s.listeners
	s.listeners = nil
	s.mu.Unlock()

	for _, ds := range listeners {
		if err := ds.Shutdown(); err != nil {
			logger.Warn("Stop %s listener on %s failed:%s", ds.Net, s.Addr(), err.Error())
		}
	}
}
