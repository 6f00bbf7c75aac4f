package chromedp_crawler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"testing"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/user/phytochem-crawler/internal/repository"
	"github.com/user/phytochem-crawler/pkg/pacer"
)

func requireChrome(t *testing.T) {
	t.Helper()
	for _, name := range []string{"google-chrome", "chromium", "chromium-browser", "headless-shell"} {
		if _, err := exec.LookPath(name); err == nil {
			return
		}
	}
	t.Skip("no chrome binary on PATH")
}

func TestFetch_RendersScriptContent(t *testing.T) {
	requireChrome(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><h5 id="t"></h5>
<script>document.getElementById("t").textContent = "Curcuma longa";</script></body></html>`))
	}))
	defer srv.Close()

	p := pacer.New(0, 0, 0)
	c := NewChromedpCrawler(Options{PageLoadTimeout: 30 * time.Second, Attempts: 1}, p, zaptest.NewLogger(t))
	defer c.Close()

	html, err := c.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Contains(t, html, "Curcuma longa")
	require.Equal(t, 1, p.Requests())
}

func TestFetch_CanceledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewChromedpCrawler(Options{PageLoadTimeout: time.Second, Attempts: 3}, pacer.New(time.Hour, 0, 0), zaptest.NewLogger(t))
	defer c.Close()

	_, err := c.Fetch(ctx, "http://127.0.0.1:1")
	require.Error(t, err)
}

func TestFetch_NotFoundStatus(t *testing.T) {
	requireChrome(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`<html><body><h1>Not Found</h1></body></html>`))
	}))
	defer srv.Close()

	c := NewChromedpCrawler(Options{PageLoadTimeout: 30 * time.Second, Attempts: 2}, pacer.New(0, 0, 0), zaptest.NewLogger(t))
	defer c.Close()

	html, err := c.Fetch(context.Background(), srv.URL)
	require.ErrorIs(t, err, repository.ErrUnexpectedStatus)
	require.Contains(t, err.Error(), "404")
	require.Empty(t, html)
}

func TestCheckStatus(t *testing.T) {
	const url = "https://cb.imsc.res.in/imppat/plantdetails/Curcuma%20longa"

	require.NoError(t, checkStatus(&network.Response{Status: http.StatusOK}, url))
	require.NoError(t, checkStatus(nil, url))

	err := checkStatus(&network.Response{Status: http.StatusServiceUnavailable}, url)
	require.ErrorIs(t, err, repository.ErrUnexpectedStatus)
	require.EqualError(t, err, "unexpected status 503 for "+url)
}
