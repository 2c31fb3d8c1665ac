package housing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-crm-leads/internal/config"
	"go-crm-leads/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	client, err := NewClient(config.HousingConfig{
		APIURL:        url,
		ProfileID:     "profile-1",
		EncryptionKey: "enc-key",
	}, nil)
	require.NoError(t, err)
	client.now = func() time.Time { return time.Unix(1700003600, 0) }
	return client
}

func TestNewClientRequiresCredentials(t *testing.T) {
	_, err := NewClient(config.HousingConfig{APIURL: "http://x", EncryptionKey: "k"}, nil)
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "HOUSING_PROFILE_ID", cfgErr.Field)

	_, err = NewClient(config.HousingConfig{APIURL: "http://x", ProfileID: "p", EncryptionKey: "  "}, nil)
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "HOUSING_ENCRYPTION_KEY", cfgErr.Field)
}

func TestFetchLeadsSignsRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "1700000000", q.Get("start_date"))
		assert.Equal(t, "1700003600", q.Get("end_date"))
		assert.Equal(t, "1700003600", q.Get("current_time"))
		assert.Equal(t, utils.SignHMACSHA256("enc-key", "1700003600"), q.Get("hash"))
		assert.Equal(t, "profile-1", q.Get("id"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	leads, err := newTestClient(t, server.URL).FetchLeads(context.Background(), "1700000000", "1700003600")
	require.NoError(t, err)
	assert.Empty(t, leads)
	assert.NotNil(t, leads)
}

func TestFetchLeadsAcceptsBareArrayAndEnvelope(t *testing.T) {
	bodies := map[string]string{
		"array":    `[{"lead_name":"Asha","lead_phone":"9876543210"}]`,
		"envelope": `{"status":200,"message":"ok","data":[{"lead_name":"Asha","lead_phone":"9876543210"}]}`,
		"string":   `{"status":"200","data":[{"lead_name":"Asha","lead_phone":9876543210}]}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			}))
			defer server.Close()

			leads, err := newTestClient(t, server.URL).FetchLeads(context.Background(), "1", "2")
			require.NoError(t, err)
			require.Len(t, leads, 1)
			assert.Equal(t, "Asha", leads[0].LeadName.String())
			assert.Equal(t, "9876543210", leads[0].LeadPhone.String())
		})
	}
}

func TestFetchLeadsEnvelopeWithoutDataIsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"no leads"}`))
	}))
	defer server.Close()

	leads, err := newTestClient(t, server.URL).FetchLeads(context.Background(), "1", "2")
	require.NoError(t, err)
	assert.Empty(t, leads)
}

func TestFetchLeadsMalformedDataElementIsProtocolError(t *testing.T) {
	body := `{"status":200,"data":[{"lead_name":"Asha","lead_phone":"9876543210"},"oops"]}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer server.Close()

	leads, err := newTestClient(t, server.URL).FetchLeads(context.Background(), "1", "2")
	require.Error(t, err)
	assert.Nil(t, leads)
	var protoErr *UpstreamProtocolError
	require.True(t, errors.As(err, &protoErr))
	assert.Equal(t, body, protoErr.Snippet)
}

func TestFetchLeadsInvalidJSON(t *testing.T) {
	body := "<html>" + strings.Repeat("x", 500) + "</html>"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL).FetchLeads(context.Background(), "1", "2")
	var protoErr *UpstreamProtocolError
	require.True(t, errors.As(err, &protoErr))
	assert.True(t, strings.HasPrefix(protoErr.Snippet, "<html>"))
	assert.LessOrEqual(t, len(protoErr.Snippet), snippetLimit+3)
}

func TestFetchLeadsEnvelopeStatusFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":401,"message":"Invalid hash"}`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL).FetchLeads(context.Background(), "1", "2")
	var reqErr *UpstreamRequestFailed
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, 401, reqErr.StatusCode)
	assert.Equal(t, "Invalid hash", reqErr.Error())
}

func TestFetchLeadsHTTPStatusFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL).FetchLeads(context.Background(), "1", "2")
	var reqErr *UpstreamRequestFailed
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusBadGateway, reqErr.StatusCode)
	assert.Equal(t, "housing api request failed with status 502", err.Error())
}

func TestFetchLatestLeadsWindow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "1699996400", q.Get("start_date"))
		assert.Equal(t, "1700003600", q.Get("end_date"))
		w.Write([]byte(`{"status":200,"data":[{"lead_name":"A","lead_phone":"1"}]}`))
	}))
	defer server.Close()

	leads, err := newTestClient(t, server.URL).FetchLatestLeads(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "A", leads[0].ClientName)
	assert.Equal(t, "General Inquiry", leads[0].EnquiryFor)
}

type failingDoer struct{}

func (failingDoer) Do(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func TestFetchLeadsTransportError(t *testing.T) {
	client := newTestClient(t, "http://housing.invalid")
	client.SetHTTPClient(failingDoer{})

	_, err := client.FetchLeads(context.Background(), "1", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
