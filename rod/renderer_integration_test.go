//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/prospect/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Render_ReturnsRenderedHTML(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<body>
<div id="contact">Loading...</div>
<script>
document.getElementById('contact').textContent = 'jane.doe@acme.com';
</script>
</body>
</html>`))
	}))
	defer srv.Close()

	r := rod.NewRenderer(rod.WithIdleWait(time.Second))
	defer r.Close()

	html, err := r.Render(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, html, "jane.doe@acme.com")
}

func TestRenderer_Render_WaitsForIdleAfterSlowLoad(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/late" {
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte("jane.doe@acme.com"))
			return
		}
		// Navigation alone outlasts the idle budget.
		time.Sleep(2500 * time.Millisecond)
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<body>
<div id="contact">Loading...</div>
<script>
window.addEventListener('load', function () {
  fetch('/late').then(function (r) { return r.text(); }).then(function (t) {
    document.getElementById('contact').textContent = t;
  });
});
</script>
</body>
</html>`))
	}))
	defer srv.Close()

	r := rod.NewRenderer(rod.WithIdleWait(2 * time.Second))
	defer r.Close()

	html, err := r.Render(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, html, "jane.doe@acme.com")
}

func TestRenderer_Render_SendsUserAgent(t *testing.T) {
	t.Parallel()

	got := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case got <- r.UserAgent():
		default:
		}
		_, _ = w.Write([]byte(`<html><body>ok</body></html>`))
	}))
	defer srv.Close()

	r := rod.NewRenderer(rod.WithUserAgent("prospect-test/1.0"), rod.WithIdleWait(0))
	defer r.Close()

	_, err := r.Render(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, "prospect-test/1.0", <-got)
}

func TestRenderer_Render_HonorsTimeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	r := rod.NewRenderer(rod.WithTimeout(500 * time.Millisecond))
	defer r.Close()

	start := time.Now()
	_, err := r.Render(context.Background(), srv.URL)

	require.Error(t, err)
	assert.Less(t, time.Since(start), 10*time.Second)
}
