package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fwojciec/prospect"
	prospecthttp "github.com/fwojciec/prospect/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSiteServer serves the given paths, replacing {{BASE}} with the server URL.
func newSiteServer(t *testing.T, pages map[string]string) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(strings.ReplaceAll(body, "{{BASE}}", srv.URL)))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSitemapSeeds_Seeds(t *testing.T) {
	t.Parallel()

	t.Run("returns people pages from robots.txt sitemap", func(t *testing.T) {
		t.Parallel()

		srv := newSiteServer(t, map[string]string{
			"/robots.txt": "User-agent: *\nDisallow: /private/\nSitemap: {{BASE}}/site-map.xml\n",
			"/site-map.xml": `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/products/widgets</loc></url>
  <url><loc>{{BASE}}/about-us</loc></url>
  <url><loc>{{BASE}}/blog/quarterly-results</loc></url>
  <url><loc>{{BASE}}/team/</loc></url>
  <url><loc>{{BASE}}/team/jane-doe</loc></url>
  <url><loc>{{BASE}}/contact.html</loc></url>
</urlset>`,
		})

		seeds := prospecthttp.NewSitemapSeeds(prospecthttp.WithHTTPClient(srv.Client()))
		urls, err := seeds.Seeds(context.Background(), prospect.Subject{Name: "Jane Doe", Domain: srv.URL})

		require.NoError(t, err)
		assert.Equal(t, []string{
			srv.URL + "/team/jane-doe",
			srv.URL + "/about-us",
			srv.URL + "/team/",
			srv.URL + "/contact.html",
		}, urls)
	})

	t.Run("falls back to sitemap.xml and follows indexes", func(t *testing.T) {
		t.Parallel()

		srv := newSiteServer(t, map[string]string{
			"/sitemap.xml": `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>{{BASE}}/sitemap-pages.xml</loc></sitemap>
  <sitemap><loc>{{BASE}}/sitemap-missing.xml</loc></sitemap>
  <sitemap><loc>{{BASE}}/sitemap.xml</loc></sitemap>
</sitemapindex>`,
			"/sitemap-pages.xml": `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/leadership</loc></url>
  <url><loc>{{BASE}}/pricing</loc></url>
</urlset>`,
		})

		seeds := prospecthttp.NewSitemapSeeds(prospecthttp.WithHTTPClient(srv.Client()))
		urls, err := seeds.Seeds(context.Background(), prospect.Subject{Name: "Jane Doe", Domain: srv.URL})

		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/leadership"}, urls)
	})

	t.Run("caps the number of seeds", func(t *testing.T) {
		t.Parallel()

		srv := newSiteServer(t, map[string]string{
			"/sitemap.xml": `<urlset>
  <url><loc>{{BASE}}/team</loc></url>
  <url><loc>{{BASE}}/about</loc></url>
  <url><loc>{{BASE}}/contact</loc></url>
</urlset>`,
		})

		seeds := prospecthttp.NewSitemapSeeds(
			prospecthttp.WithHTTPClient(srv.Client()),
			prospecthttp.WithMaxSeeds(2),
		)
		urls, err := seeds.Seeds(context.Background(), prospect.Subject{Name: "Jane Doe", Domain: srv.URL})

		require.NoError(t, err)
		assert.Len(t, urls, 2)
	})

	t.Run("returns nothing without a domain", func(t *testing.T) {
		t.Parallel()

		seeds := prospecthttp.NewSitemapSeeds()
		urls, err := seeds.Seeds(context.Background(), prospect.Subject{Name: "Jane Doe"})

		require.NoError(t, err)
		assert.Empty(t, urls)
	})

	t.Run("returns nothing when the site has no sitemap", func(t *testing.T) {
		t.Parallel()

		srv := newSiteServer(t, map[string]string{})

		seeds := prospecthttp.NewSitemapSeeds(prospecthttp.WithHTTPClient(srv.Client()))
		urls, err := seeds.Seeds(context.Background(), prospect.Subject{Name: "Jane Doe", Domain: srv.URL})

		require.NoError(t, err)
		assert.Empty(t, urls)
	})

	t.Run("reports malformed sitemap XML", func(t *testing.T) {
		t.Parallel()

		srv := newSiteServer(t, map[string]string{
			"/sitemap.xml": `<urlset><url><loc>{{BASE}}/team</loc></url></urlset`,
		})

		seeds := prospecthttp.NewSitemapSeeds(prospecthttp.WithHTTPClient(srv.Client()))
		_, err := seeds.Seeds(context.Background(), prospect.Subject{Name: "Jane Doe", Domain: srv.URL})

		require.Error(t, err)
	})

	t.Run("returns context error when canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		seeds := prospecthttp.NewSitemapSeeds()
		_, err := seeds.Seeds(ctx, prospect.Subject{Name: "Jane Doe", Domain: "acme.com"})

		require.ErrorIs(t, err, context.Canceled)
	})
}
