package main

import (
	"net"
	"regexp"
	"strings"

	"github.com/miekg/dns"
)

var domainPattern = regexp.MustCompile(`^([a-zA-Z0-9\*]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,6}$`)

func isDomain(domain string) bool {
	if isIP(domain) {
		return false
	}
	if _, ok := dns.IsDomainName(domain); !ok {
		return false
	}
	return domainPattern.MatchString(domain)
}

func isIP(ip string) bool {
	return (net.ParseIP(ip) != nil)
}

func UnFqdn(s string) string {
	if dns.IsFqdn(s) {
		return s[:len(s)-1]
	}
	return s
}

// zoneQuery strips zone from a question name and returns the labels left,
// joined by dots. Labels are read from the wire form of name, so escaped
// bytes such as \195\169 or "\ " come back raw. ok is false when name is
// not below zone.
func zoneQuery(name, zone string) (string, bool) {
	name = dns.Fqdn(name)
	zone = dns.Fqdn(zone)
	if strings.EqualFold(name, zone) || !dns.IsSubDomain(zone, name) {
		return "", false
	}

	labels, ok := rawLabels(name)
	if !ok {
		return "", false
	}
	n := len(labels) - dns.CountLabel(zone)
	if n <= 0 {
		return "", false
	}
	return strings.Join(labels[:n], "."), true
}

func rawLabels(name string) ([]string, bool) {
	buf := make([]byte, 256)
	end, err := dns.PackDomainName(name, buf, 0, nil, false)
	if err != nil {
		return nil, false
	}

	var labels []string
	for off := 0; off < end; {
		l := int(buf[off])
		if l == 0 {
			break
		}
		labels = append(labels, string(buf[off+1:off+1+l]))
		off += 1 + l
	}
	return labels, true
}
