package engine

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/arthur-debert/packwise/pkg/compose"
	"github.com/arthur-debert/packwise/pkg/devserver"
	"github.com/arthur-debert/packwise/pkg/errors"
)

// ReloadPath is the dev server endpoint the reload client connects to
const ReloadPath = devserver.ReloadPath

// ReloadEvent is dispatched on window by the client for every reload
// message; the hot acceptor listens for it
const ReloadEvent = "packwise:reload"

const clientTemplate = `(function () {
  var url = %s;
  function connect() {
    var socket = new WebSocket(url);
    socket.onmessage = function (event) {
      if (event.data === "reload") {
        window.dispatchEvent(new CustomEvent(%s));
      }
    };
    socket.onclose = function () {
      setTimeout(connect, 1000);
    };
  }
  connect();
})();
`

const acceptorTemplate = `(function () {
  var accepted = false;
  window.addEventListener(%s, function () {
    if (accepted) return;
    accepted = true;
    window.location.reload();
  });
})();
`

// LiveModuleSource returns the source of a live-reload module request
func LiveModuleSource(request string) (string, error) {
	switch {
	case strings.HasPrefix(request, compose.ReloadClientEntry):
		endpoint, err := ReloadURL(strings.TrimPrefix(request, compose.ReloadClientEntry))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(clientTemplate, strconv.Quote(endpoint), strconv.Quote(ReloadEvent)), nil
	case request == compose.HotAcceptorEntry:
		return fmt.Sprintf(acceptorTemplate, strconv.Quote(ReloadEvent)), nil
	}
	return "", errors.Newf(errors.ErrNotFound, "unknown live reload module %s", request)
}

// ReloadURL turns the client's "?http://host:port/" query into the dev
// server's websocket endpoint
func ReloadURL(query string) (string, error) {
	raw := strings.TrimPrefix(query, "?")
	if raw == "" {
		return "", errors.New(errors.ErrInvalidInput, "reload client needs a server url")
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", errors.Newf(errors.ErrInvalidInput, "invalid reload server url %q", raw)
	}

	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = ReloadPath
	u.RawQuery = ""
	return u.String(), nil
}
