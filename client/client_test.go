package client_test

import (
	"bytes"
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripplanner/tripplanner-client/client"
	"github.com/tripplanner/tripplanner-client/internal/testbackend"
)

func sampleForm() client.TripFormData {
	return client.TripFormData{
		City:           "北京",
		StartDate:      "2025-10-01",
		EndDate:        "2025-10-03",
		TravelDays:     3,
		Transportation: "公共交通",
		Accommodation:  "经济型酒店",
		Preferences:    []string{"历史文化", "美食"},
		FreeTextInput:  "想去故宫",
	}
}

func newClient(t *testing.T, baseURL string, opts ...client.Option) *client.Client {
	t.Helper()
	opts = append([]client.Option{client.WithLogger(zerolog.Nop())}, opts...)
	c, err := client.New(client.Config{BaseURL: baseURL}, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestSubmitTripPlan_Success(t *testing.T) {
	backend, srv := testbackend.Start(t)
	c := newClient(t, srv.URL)

	resp, err := c.SubmitTripPlan(context.Background(), sampleForm())
	require.NoError(t, err)
	require.NotNil(t, resp.Data)
	assert.True(t, resp.Success)
	assert.Equal(t, "北京", resp.Data.City)
	assert.Len(t, resp.Data.Days, 3)
	assert.Equal(t, "2025-10-03", resp.Data.Days[2].Date)

	require.Len(t, backend.Received(), 1)
	assert.Equal(t, sampleForm(), backend.Received()[0])
}

func TestSubmitTripPlan_ServerStatusMessages(t *testing.T) {
	cases := []struct {
		name   string
		status int
		detail string
		want   string
	}{
		{"not found", http.StatusNotFound, "no such route", "requested resource not found; verify API path"},
		{"internal", http.StatusInternalServerError, "生成旅行计划失败: LLM timeout", "internal server error; retry later"},
		{"teapot with detail", http.StatusTeapot, "teapot", "teapot"},
		{"teapot without detail", http.StatusTeapot, "", "request failed (418)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, srv := testbackend.Start(t, testbackend.WithPlanFailure(tc.status, tc.detail))
			c := newClient(t, srv.URL)

			resp, err := c.SubmitTripPlan(context.Background(), sampleForm())
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.Equal(t, tc.want, err.Error())
			assert.ErrorIs(t, err, client.ErrServerStatus)
			assert.Equal(t, tc.status, client.StatusCode(err))
		})
	}
}

func TestSubmitTripPlan_WrongBasePath(t *testing.T) {
	_, srv := testbackend.Start(t)
	c := newClient(t, srv.URL+"/v2")

	_, err := c.SubmitTripPlan(context.Background(), sampleForm())
	require.Error(t, err)
	assert.Equal(t, "requested resource not found; verify API path", err.Error())
}

func TestSubmitTripPlan_Timeout(t *testing.T) {
	backend, srv := testbackend.Start(t, testbackend.WithDelay(5*time.Second))
	c := newClient(t, srv.URL, client.WithHTTPTimeout(100*time.Millisecond))

	start := time.Now()
	_, err := c.SubmitTripPlan(context.Background(), sampleForm())
	require.Error(t, err)
	assert.Less(t, time.Since(start), 4*time.Second)
	assert.Equal(t, "cannot reach server; check network or backend availability", err.Error())
	assert.True(t, client.IsNetwork(err))
	assert.Zero(t, client.StatusCode(err))
	assert.Equal(t, 1, backend.Hits("POST /api/trip/plan"))
}

func TestCheckHealth_ConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	c := newClient(t, "http://"+addr)
	_, err = c.CheckHealth(context.Background())
	require.Error(t, err)
	assert.Equal(t, "cannot reach server; check network or backend availability", err.Error())
}

func TestSubmitTripPlan_SetupFailure(t *testing.T) {
	c := newClient(t, "gopher://planner.local")
	_, err := c.SubmitTripPlan(context.Background(), sampleForm())
	require.Error(t, err)
	assert.Equal(t, `unsupported protocol scheme "gopher"`, err.Error())
	assert.ErrorIs(t, err, client.ErrRequestSetup)

	c = newClient(t, "http://[::1")
	_, err = c.SubmitTripPlan(context.Background(), sampleForm())
	require.Error(t, err)
	assert.ErrorIs(t, err, client.ErrRequestSetup)
	assert.Contains(t, err.Error(), "missing ']' in host")
}

func TestSubmitTripPlan_InvalidBody(t *testing.T) {
	_, srv := testbackend.Start(t, testbackend.WithPlanBody(`{"success": "yes"}`))
	c := newClient(t, srv.URL)

	_, err := c.SubmitTripPlan(context.Background(), sampleForm())
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "invalid response body: "), err.Error())
	assert.ErrorIs(t, err, client.ErrUnknown)
	assert.Equal(t, http.StatusOK, client.StatusCode(err))
}

func TestSubmitTripPlan_IndependentCalls(t *testing.T) {
	backend, srv := testbackend.Start(t)
	c := newClient(t, srv.URL)

	in := sampleForm()
	first, err := c.SubmitTripPlan(context.Background(), in)
	require.NoError(t, err)
	second, err := c.SubmitTripPlan(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, sampleForm(), in, "input must not be mutated")
	assert.Equal(t, first, second)
	assert.NotSame(t, first, second)
	assert.Equal(t, 2, backend.Hits("POST /api/trip/plan"))
}

func TestSubmitTripPlan_Concurrent(t *testing.T) {
	backend, srv := testbackend.Start(t)
	c := newClient(t, srv.URL)

	const n = 16
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.SubmitTripPlan(context.Background(), sampleForm())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, n, backend.Hits("POST /api/trip/plan"))
}

func TestCheckHealth_PassThrough(t *testing.T) {
	_, srv := testbackend.Start(t, testbackend.WithHealth(http.StatusOK, map[string]any{"status": "ok"}))
	c := newClient(t, srv.URL)

	got, err := c.CheckHealth(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"status": "ok"}, got)
}

func TestCheckHealth_Failures(t *testing.T) {
	_, srv := testbackend.Start(t, testbackend.WithHealth(http.StatusServiceUnavailable, map[string]any{"detail": "服务不可用: agent down"}))
	c := newClient(t, srv.URL)

	_, err := c.CheckHealth(context.Background())
	require.Error(t, err)
	assert.Equal(t, "服务不可用: agent down", err.Error())

	var ue *client.UserError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, client.KindServerStatus, ue.Kind)
	assert.Equal(t, http.StatusServiceUnavailable, ue.StatusCode)
}

func TestClient_LogsEveryCall(t *testing.T) {
	_, srv := testbackend.Start(t, testbackend.WithPlanFailure(http.StatusTeapot, "teapot"))
	var buf bytes.Buffer
	c, err := client.New(client.Config{BaseURL: srv.URL}, client.WithLogger(zerolog.New(&buf)))
	require.NoError(t, err)

	_, err = c.SubmitTripPlan(context.Background(), sampleForm())
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, `"method":"POST"`)
	assert.Contains(t, out, `"path":"/api/trip/plan"`)
	assert.Contains(t, out, `"message":"HTTP request"`)
	assert.Contains(t, out, `"message":"HTTP response"`)
	assert.Contains(t, out, `"message":"HTTP response error"`)
	assert.Contains(t, out, `"raw_message":"I'm a teapot"`)
	assert.Contains(t, out, `"message":"failed to generate trip plan"`)
	assert.Equal(t, 4, strings.Count(out, `"call_id":"`))
}
