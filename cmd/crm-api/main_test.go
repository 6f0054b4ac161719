package main

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/blackwell-systems/outcome/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestCodesCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"codes"})

	require.NoError(t, cmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Greater(t, len(lines), 1)
	assert.True(t, strings.HasPrefix(lines[0], "STATUS"))

	var dealNotFound, duplicateEmail string
	for _, line := range lines {
		fields := strings.Fields(line)
		switch fields[1] {
		case "Deal.NotFound":
			dealNotFound = fields[0]
		case "Contact.DuplicateEmail":
			duplicateEmail = fields[0]
		}
	}
	assert.Equal(t, "404", dealNotFound)
	assert.Equal(t, "409", duplicateEmail)
}

func TestServeRejectsInvalidConfig(t *testing.T) {
	t.Setenv("CRM_ENV", "")
	cmd := newRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"serve", "--config", "", "--env", "staging"})

	err := cmd.Execute()
	assert.ErrorContains(t, err, "invalid environment")
}

func TestServeShutsDownCleanly(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := config.DefaultConfig()
	logger := zap.NewNop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler, closeStore, err := newHandler(ctx, cfg, logger)
	require.NoError(t, err)
	defer closeStore()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, logger, &http.Server{Handler: handler}, ln, time.Second)
	}()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + ln.Addr().String() + "/deals/missing")
	require.NoError(t, err)
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
