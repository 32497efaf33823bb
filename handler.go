package main

import (
	"strconv"

	"github.com/miekg/dns"
)

const answerTTL = 60

type Question struct {
	qname  string
	qtype  string
	qclass string
}

func (q *Question) String() string {
	return q.qname + " " + q.qclass + " " + q.qtype
}

type TrieHandler struct {
	index *Index
	cache Cache
	audit AuditLogger
	zone  string
}

func NewHandler(index *Index, cache Cache, audit AuditLogger, zone string) *TrieHandler {
	if mc, ok := cache.(*MemoryCache); ok {
		index.OnPublish(func(uint64) { mc.Clear() })
	}
	return &TrieHandler{
		index: index,
		cache: cache,
		audit: audit,
		zone:  dns.Fqdn(zone),
	}
}

// depth looks query up through the cache. Not-found results are cached too.
func (h *TrieHandler) depth(query string) int {
	tree, gen := h.index.Current()
	if h.cache == nil {
		return tree.LookupDepth(query)
	}

	key := KeyGen(gen, query)
	depth, err := h.cache.Get(key)
	if err == nil {
		logger.Debug("%q hit cache", query)
		return depth
	}
	logger.Debug("%q didn't hit cache: %s", query, err)

	depth = tree.LookupDepth(query)
	if err := h.cache.Set(key, depth); err != nil {
		logger.Debug("Set %q cache failed: %s", query, err)
	}
	return depth
}

/*
TXT <query>.<zone> answers "depth=<n>" when query is a stored key and
NXDOMAIN otherwise. Anything else is refused.
*/
func (h *TrieHandler) answer(req *dns.Msg, remoteAddr string) *dns.Msg {
	m := new(dns.Msg)
	m.SetReply(req)
	m.Authoritative = true

	if len(req.Question) != 1 {
		m.Rcode = dns.RcodeFormatError
		return m
	}

	q := req.Question[0]
	Q := Question{UnFqdn(q.Name), dns.TypeToString[q.Qtype], dns.ClassToString[q.Qclass]}
	logger.Debug("Question: %s", Q.String())

	query, ok := zoneQuery(q.Name, h.zone)
	if !ok || q.Qtype != dns.TypeTXT || q.Qclass != dns.ClassINET {
		m.Rcode = dns.RcodeRefused
		return m
	}

	depth := h.depth(query)
	if h.audit != nil {
		h.audit.Write(NewAuditMessage(remoteAddr, query, depth))
	}

	if depth < 0 {
		m.Rcode = dns.RcodeNameError
		return m
	}

	m.Answer = append(m.Answer, &dns.TXT{
		Hdr: dns.RR_Header{Name: q.Name, Rrtype: dns.TypeTXT, Class: dns.ClassINET, Ttl: answerTTL},
		Txt: []string{"depth=" + strconv.Itoa(depth)},
	})
	return m
}

func (h *TrieHandler) do(net string, w dns.ResponseWriter, req *dns.Msg) {
	m := h.answer(req, w.RemoteAddr().String())
	if err := w.WriteMsg(m); err != nil {
		logger.Warn("write %s answer to %s failed: %s", net, w.RemoteAddr(), err)
	}
}

func (h *TrieHandler) DoTCP(w dns.ResponseWriter, req *dns.Msg) {
	h.do("tcp", w, req)
}

func (h *TrieHandler) DoUDP(w dns.ResponseWriter, req *dns.Msg) {
	h.do("udp", w, req)
}
