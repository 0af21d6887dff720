package resolver

import (
	"context"
	"errors"
	"net/netip"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/miekg/dns"
	"github.com/qdm12/machine-identity/internal/resolver/mock_resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Resolver_ReverseLookup_dns(t *testing.T) {
	t.Parallel()

	const serverAddress = "1.1.1.1:53"

	testCases := map[string]struct {
		ip          netip.Addr
		exchange    bool
		response    *dns.Msg
		exchangeErr error
		hostname    string
		errWrapped  error
		errMessage  string
	}{
		"invalid address": {
			errWrapped: ErrIPNotValid,
			errMessage: "IP address is not valid: invalid IP",
		},
		"exchange error": {
			ip:          netip.MustParseAddr("10.1.2.3"),
			exchange:    true,
			exchangeErr: errors.New("dummy"),
			errMessage:  "dummy",
		},
		"name error": {
			ip:         netip.MustParseAddr("10.1.2.3"),
			exchange:   true,
			response:   &dns.Msg{MsgHdr: dns.MsgHdr{Rcode: dns.RcodeNameError}},
			errWrapped: ErrResponseCode,
			errMessage: "response code is not success: NXDOMAIN",
		},
		"no answer": {
			ip:         netip.MustParseAddr("10.1.2.3"),
			exchange:   true,
			response:   &dns.Msg{},
			errWrapped: ErrAnswerNotReceived,
			errMessage: "answer not received",
		},
		"wrong answer type": {
			ip:         netip.MustParseAddr("10.1.2.3"),
			exchange:   true,
			response:   &dns.Msg{Answer: []dns.RR{&dns.A{}}},
			errWrapped: ErrAnswerTypeNotValid,
			errMessage: "answer type is not expected: *dns.A instead of *dns.PTR",
		},
		"empty PTR": {
			ip:         netip.MustParseAddr("10.1.2.3"),
			exchange:   true,
			response:   &dns.Msg{Answer: []dns.RR{&dns.PTR{Ptr: "."}}},
			errWrapped: ErrNoHostnameFound,
			errMessage: "no hostname found: for 10.1.2.3",
		},
		"success": {
			ip:       netip.MustParseAddr("10.1.2.3"),
			exchange: true,
			response: &dns.Msg{Answer: []dns.RR{
				&dns.PTR{Ptr: "host.example.com."},
				&dns.PTR{Ptr: "alias.example.com."},
			}},
			hostname: "host.example.com",
		},
		"ipv4 mapped address": {
			ip:       netip.MustParseAddr("::ffff:10.1.2.3"),
			exchange: true,
			response: &dns.Msg{Answer: []dns.RR{&dns.PTR{Ptr: "host.example.com."}}},
			hostname: "host.example.com",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)

			client := mock_resolver.NewMockClient(ctrl)
			if testCase.exchange {
				client.EXPECT().
					ExchangeContext(gomock.Any(), gomock.Any(), serverAddress).
					DoAndReturn(func(_ context.Context, request *dns.Msg, _ string) (
						*dns.Msg, time.Duration, error) {
						require.Len(t, request.Question, 1)
						question := request.Question[0]
						assert.Equal(t, "3.2.1.10.in-addr.arpa.", question.Name)
						assert.Equal(t, dns.TypePTR, question.Qtype)
						assert.Equal(t, uint16(dns.ClassINET), question.Qclass)
						assert.True(t, request.RecursionDesired)
						return testCase.response, time.Millisecond, testCase.exchangeErr
					})
			}

			resolver := &Resolver{
				address: serverAddress,
				timeout: time.Second,
				client:  client,
			}

			hostname, err := resolver.ReverseLookup(context.Background(), testCase.ip)

			if testCase.errWrapped != nil {
				assert.ErrorIs(t, err, testCase.errWrapped)
			}
			if testCase.errMessage != "" {
				assert.EqualError(t, err, testCase.errMessage)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, testCase.hostname, hostname)
		})
	}
}

func Test_Resolver_ReverseLookup_go(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		ip         netip.Addr
		names      []string
		lookupErr  error
		hostname   string
		errMessage string
	}{
		"lookup error": {
			ip:         netip.MustParseAddr("2001:db8::1"),
			lookupErr:  errors.New("dummy"),
			errMessage: "dummy",
		},
		"no name": {
			ip:         netip.MustParseAddr("2001:db8::1"),
			errMessage: "no hostname found: for 2001:db8::1",
		},
		"trailing dot trimmed": {
			ip:       netip.MustParseAddr("2001:db8::1"),
			names:    []string{"host.example.com."},
			hostname: "host.example.com",
		},
		"zone removed": {
			ip:       netip.MustParseAddr("2001:db8::1%eth0"),
			names:    []string{"", "host"},
			hostname: "host",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)

			lookuper := mock_resolver.NewMockAddrLookuper(ctrl)
			lookuper.EXPECT().LookupAddr(gomock.Any(), "2001:db8::1").
				Return(testCase.names, testCase.lookupErr)

			resolver := &Resolver{
				timeout:  time.Second,
				goLookup: lookuper,
			}

			hostname, err := resolver.ReverseLookup(context.Background(), testCase.ip)

			if testCase.errMessage != "" {
				assert.EqualError(t, err, testCase.errMessage)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, testCase.hostname, hostname)
		})
	}
}

func Test_Resolver_LocalHostname(t *testing.T) {
	t.Parallel()

	resolver := &Resolver{
		hostname: func() (string, error) { return "machine", nil },
	}
	hostname, err := resolver.LocalHostname()
	require.NoError(t, err)
	assert.Equal(t, "machine", hostname)

	resolver.hostname = func() (string, error) { return "", errors.New("dummy") }
	hostname, err = resolver.LocalHostname()
	assert.EqualError(t, err, "getting hostname: dummy")
	assert.Empty(t, hostname)
}

func Test_New(t *testing.T) {
	t.Parallel()

	resolver, err := New(Settings{})
	require.NoError(t, err)
	assert.Empty(t, resolver.address)
	assert.Equal(t, 5*time.Second, resolver.timeout)

	address := "1.1.1.1"
	_, err = New(Settings{Address: &address})
	assert.EqualError(t, err, "validating settings: splitting host and port "+
		"from address: address 1.1.1.1: missing port in address")
}
