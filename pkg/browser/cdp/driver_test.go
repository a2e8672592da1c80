package cdp_test

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"testing"
	"time"

	"mailprov/pkg/browser"
	"mailprov/pkg/browser/cdp"
	"mailprov/pkg/logger"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const testPage = `<html><body>
<input id="user" type="text">
<button id="go" onclick="document.getElementById('out').textContent = document.getElementById('user').value">go</button>
<div id="out"></div>
<div id="spinner" style="display:none">loading</div>
</body></html>`

func startHeadlessShell(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "chromedp/headless-shell:latest",
			ExposedPorts: []string{"9222/tcp"},
			WaitingFor:   wait.ForListeningPort("9222/tcp"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "9222/tcp")
	require.NoError(t, err)

	return fmt.Sprintf("http://%s:%d", host, port.Int())
}

func TestDriver_RemoteBrowser(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
	logger.Setup(logger.DevelopmentEnvironment, logger.FileOptions{})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	endpoint := startHeadlessShell(ctx, t)
	drv, err := cdp.Connect(ctx, cdp.Options{
		URL:              endpoint,
		ConnectRetries:   20,
		ConnectRetryWait: 500 * time.Millisecond,
		ViewportWidth:    1024,
		ViewportHeight:   700,
	})
	require.NoError(t, err)
	defer func() { require.NoError(t, drv.Close(context.Background())) }()

	step := func() context.Context {
		c, stop := context.WithTimeout(ctx, 10*time.Second)
		t.Cleanup(stop)

		return c
	}

	require.NoError(t, drv.Navigate(step(), "data:text/html,"+url.PathEscape(testPage)))

	loc, err := drv.Location(step())
	require.NoError(t, err)
	require.Contains(t, loc, "data:text/html")

	require.NoError(t, drv.WaitPresent(step(), "#user"))
	require.NoError(t, drv.WaitVisible(step(), "#user"))
	require.NoError(t, drv.WaitNotVisible(step(), "#spinner"))
	require.NoError(t, drv.SendKeys(step(), "#user", "user001"+browser.KeyTab))
	require.NoError(t, drv.Click(step(), "#go"))

	var out string
	require.NoError(t, drv.Evaluate(step(), `document.getElementById('out').textContent`, &out))
	require.Equal(t, "user001", out)

	var width int
	require.NoError(t, drv.Evaluate(step(), `window.innerWidth`, &width))
	require.Equal(t, 1024, width)

	// nil result is discarded
	require.NoError(t, drv.Evaluate(step(), `document.title = 'x'`, nil))

	png, err := drv.Screenshot(step())
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	require.NoError(t, drv.Reload(step()))

	// a bounded wait on a missing element returns instead of hanging
	short, stop := context.WithTimeout(ctx, 300*time.Millisecond)
	defer stop()
	require.Error(t, drv.WaitVisible(short, "#missing"))
}
