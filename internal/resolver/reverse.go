package resolver

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"strings"

	"github.com/miekg/dns"
)

var (
	ErrIPNotValid         = errors.New("IP address is not valid")
	ErrAnswerNotReceived  = errors.New("answer not received")
	ErrResponseCode       = errors.New("response code is not success")
	ErrAnswerTypeNotValid = errors.New("answer type is not expected")
	ErrNoHostnameFound    = errors.New("no hostname found")
)

// ReverseLookup returns the first hostname found for the IP address
// given, without its trailing root dot.
func (r *Resolver) ReverseLookup(ctx context.Context, ip netip.Addr) (
	hostname string, err error) {
	if !ip.IsValid() {
		return "", fmt.Errorf("%w: %s", ErrIPNotValid, ip)
	}
	ip = ip.WithZone("").Unmap()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if r.address == "" {
		return lookupGo(ctx, r.goLookup, ip)
	}
	return lookupPTR(ctx, r.client, r.address, ip)
}

func lookupGo(ctx context.Context, lookuper AddrLookuper, ip netip.Addr) (
	hostname string, err error) {
	names, err := lookuper.LookupAddr(ctx, ip.String())
	if err != nil {
		return "", err
	}

	for _, name := range names {
		name = strings.TrimSuffix(name, ".")
		if name != "" {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: for %s", ErrNoHostnameFound, ip)
}

func lookupPTR(ctx context.Context, client Client, address string,
	ip netip.Addr) (hostname string, err error) {
	arpa, err := dns.ReverseAddr(ip.String())
	if err != nil {
		return "", fmt.Errorf("building reverse name: %w", err)
	}

	request := &dns.Msg{
		MsgHdr: dns.MsgHdr{
			Id:               dns.Id(),
			Opcode:           dns.OpcodeQuery,
			RecursionDesired: true,
		},
		Question: []dns.Question{{
			Name:   arpa,
			Qtype:  dns.TypePTR,
			Qclass: dns.ClassINET,
		}},
	}

	response, _, err := client.ExchangeContext(ctx, request, address)
	if err != nil {
		return "", err
	}

	if response.Rcode != dns.RcodeSuccess {
		return "", fmt.Errorf("%w: %s", ErrResponseCode, dns.RcodeToString[response.Rcode])
	}

	if len(response.Answer) == 0 {
		return "", fmt.Errorf("%w", ErrAnswerNotReceived)
	}

	for _, answer := range response.Answer {
		ptr, ok := answer.(*dns.PTR)
		if !ok {
			return "", fmt.Errorf("%w: %T instead of %T",
				ErrAnswerTypeNotValid, answer, ptr)
		}
		name := strings.TrimSuffix(ptr.Ptr, ".")
		if name != "" {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: for %s", ErrNoHostnameFound, ip)
}
