package transcriber

import (
	"crypto/tls"
	"io"
	"net/http"
	"net/http/httptrace"
	"time"
)

// RequestMetrics breaks a backend call down by phase. Lecture uploads are
// large, so knowing whether time went to TLS setup, upload or the model
// itself matters when a run is slow.
type RequestMetrics struct {
	DNS      time.Duration
	TCP      time.Duration
	TLS      time.Duration
	TTFB     time.Duration
	Download time.Duration
	Total    time.Duration
}

type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Metrics    RequestMetrics
}

// TracedClient wraps http.Client with per-phase timing via httptrace.
type TracedClient struct {
	client *http.Client
}

func NewTracedClient() *TracedClient {
	return &TracedClient{client: &http.Client{}}
}

func (c *TracedClient) Do(req *http.Request) (*Response, error) {
	var m RequestMetrics
	var dnsStart, connStart, tlsStart, wroteReq time.Time
	start := time.Now()

	trace := &httptrace.ClientTrace{
		DNSStart:     func(httptrace.DNSStartInfo) { dnsStart = time.Now() },
		DNSDone:      func(httptrace.DNSDoneInfo) { m.DNS = time.Since(dnsStart) },
		ConnectStart: func(_, _ string) { connStart = time.Now() },
		ConnectDone:  func(_, _ string, _ error) { m.TCP = time.Since(connStart) },
		TLSHandshakeStart: func() { tlsStart = time.Now() },
		TLSHandshakeDone:  func(_ tls.ConnectionState, _ error) { m.TLS = time.Since(tlsStart) },
		WroteRequest:      func(httptrace.WroteRequestInfo) { wroteReq = time.Now() },
		GotFirstResponseByte: func() {
			if !wroteReq.IsZero() {
				m.TTFB = time.Since(wroteReq)
			}
		},
	}

	req = req.WithContext(httptrace.WithClientTrace(req.Context(), trace))

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	downloadStart := time.Now()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	m.Download = time.Since(downloadStart)
	m.Total = time.Since(start)

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
		Metrics:    m,
	}, nil
}
