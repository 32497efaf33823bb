package main

import (
	"testing"
	"time"

	"github.com/miekg/dns"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewServer(t *testing.T) {
	Convey("Servers should take address and timeouts from settings", t, func() {
		noop := func(dns.ResponseWriter, *dns.Msg) {}
		s := NewServer(DNSServerSettings{Host: "127.0.0.1", Port: 5353, ReadTimeout: 3, WriteTimeout: 7})
		So(s.Addr(), ShouldEqual, "127.0.0.1:5353")

		udp := s.listener("udp", noop)
		So(udp.Net, ShouldEqual, "udp")
		So(udp.ReadTimeout, ShouldEqual, 3*time.Second)
		So(udp.WriteTimeout, ShouldEqual, 7*time.Second)
		So(udp.UDPSize, ShouldEqual, 65535)

		tcp := s.listener("tcp", noop)
		So(tcp.Addr, ShouldEqual, "127.0.0.1:5353")
		So(tcp.UDPSize, ShouldEqual, 0)
	})
}
