package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/qdm12/machine-identity/pkg/format"
	"github.com/qdm12/machine-identity/pkg/machine"
	"github.com/qdm12/machine-identity/pkg/machine/mock_machine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIdentity(t *testing.T, hostname string, hostnameErr error) *machine.Identity {
	t.Helper()
	ctrl := gomock.NewController(t)

	ctx := context.Background()
	address := netip.MustParseAddr("192.0.2.1")

	resolver := mock_machine.NewMockNameResolver(ctrl)
	resolver.EXPECT().ReverseLookup(ctx, address).Return(hostname, hostnameErr)
	logger := mock_machine.NewMockLogger(ctrl)
	if hostnameErr != nil {
		logger.EXPECT().Warn(gomock.Any())
	}

	identity, err := machine.New(ctx, machine.Settings{Address: address},
		resolver, nil, format.New(), logger)
	require.NoError(t, err)
	return identity
}

func newAddresslessIdentity(t *testing.T) *machine.Identity {
	t.Helper()
	ctrl := gomock.NewController(t)

	lister := mock_machine.NewMockInterfaceLister(ctrl)
	lister.EXPECT().ListAddresses().Return(nil, nil)
	logger := mock_machine.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any())

	identity, err := machine.New(context.Background(),
		machine.Settings{Hostname: ptrTo("machine")},
		nil, lister, format.New(), logger)
	require.NoError(t, err)
	return identity
}

func ptrTo[T any](value T) *T { return &value }

func Test_handlers(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		rootURL     string
		hostname    string
		hostnameErr error
		noAddress   bool
		path        string
		status      int
		contentType string
		body        string
	}{
		"identity": {
			rootURL:     "/",
			hostname:    "host.example.com",
			path:        "/api/v1/identity",
			status:      http.StatusOK,
			contentType: "application/json",
			body: `{"hostname":"host.example.com","address":"192.0.2.1",` +
				`"address_hex":"C0000201","ipv4":"192.0.2.1","ipv4_rank":"global",` +
				`"ipv6":"","ipv6_rank":"unusable"}` + "\n",
		},
		"hostname with root URL": {
			rootURL:     "/machine/",
			hostname:    "host.example.com",
			path:        "/machine/api/v1/identity/hostname",
			status:      http.StatusOK,
			contentType: "text/plain; charset=utf-8",
			body:        "host.example.com\n",
		},
		"unknown hostname": {
			rootURL:     "/",
			hostnameErr: errors.New("dummy"),
			path:        "/api/v1/identity/hostname",
			status:      http.StatusNotFound,
			contentType: "application/json",
			body:        `{"status":404,"error":"hostname is unknown"}` + "\n",
		},
		"unknown address": {
			rootURL:     "/",
			noAddress:   true,
			path:        "/api/v1/identity/address",
			status:      http.StatusNotFound,
			contentType: "application/json",
			body:        `{"status":404,"error":"address is unknown"}` + "\n",
		},
		"address": {
			rootURL:     "/",
			hostname:    "host",
			path:        "/api/v1/identity/address",
			status:      http.StatusOK,
			contentType: "text/plain; charset=utf-8",
			body:        "192.0.2.1\n",
		},
		"not found": {
			rootURL:  "/",
			hostname: "host",
			path:     "/api/v1/records",
			status:   http.StatusNotFound,
			body:     "404 page not found\n",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)

			var identity *machine.Identity
			if testCase.noAddress {
				identity = newAddresslessIdentity(t)
			} else {
				identity = newTestIdentity(t, testCase.hostname, testCase.hostnameErr)
			}
			identityGetter := func() *machine.Identity { return identity }

			logger := mock_machine.NewMockLogger(ctrl)
			logger.EXPECT().Debug("GET " + testCase.path + " from 192.0.2.100:1234")
			handler := newHandler(testCase.rootURL, identityGetter, &debugLogger{logger})

			request := httptest.NewRequest(http.MethodGet, testCase.path, nil)
			request.RemoteAddr = "192.0.2.100:1234"
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, testCase.status, recorder.Code)
			if testCase.contentType != "" {
				assert.Equal(t, testCase.contentType, recorder.Header().Get("Content-Type"))
			}
			assert.Equal(t, testCase.body, recorder.Body.String())
		})
	}
}

// debugLogger completes the machine mock logger into a server Logger.
type debugLogger struct {
	*mock_machine.MockLogger
}

func (l *debugLogger) Info(string)  {}
func (l *debugLogger) Error(string) {}
