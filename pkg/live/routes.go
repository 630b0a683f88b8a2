package live

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/animate/pkg/render"
	"github.com/vango-dev/animate/pkg/vdom"
)

// Router returns the host's HTTP routes:
//
//	GET /         the page with the current render inlined
//	GET /ws       the live WebSocket endpoint
//	GET /metrics  Prometheus metrics
func (h *Host) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", h.servePage)
	r.Get("/ws", h.serveWS)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(h.config.Gatherer, promhttp.HandlerOpts{}))
	return r
}

func (h *Host) servePage(w http.ResponseWriter, r *http.Request) {
	body, err := h.Render()
	if err != nil {
		h.logger.Error("page render failed", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte("<!DOCTYPE html>"))
	if err := render.NewRenderer(render.RendererConfig{}).RenderToWriter(w, h.page(body)); err != nil {
		h.logger.Error("page write failed", "error", err)
	}
}

// page builds the document shell around an already rendered body.
func (h *Host) page(body string) *vdom.VNode {
	return vdom.Html(
		vdom.Head(
			vdom.Meta(vdom.Attr{Key: "charset", Value: "utf-8"}),
			vdom.Title(h.config.Title),
			vdom.If(h.config.CSS != "", vdom.StyleEl(vdom.Raw(h.config.CSS))),
		),
		vdom.Body(
			vdom.Main(vdom.ID("root"), vdom.Raw(body)),
			vdom.Script(vdom.Raw(clientScript)),
		),
	)
}

// clientScript swaps in html frames and reports animationend and click
// events for elements that have a server handler.
const clientScript = `(function () {
  var root = document.getElementById("root");
  var proto = location.protocol === "https:" ? "wss:" : "ws:";
  var ws = new WebSocket(proto + "//" + location.host + "/ws");
  ws.onmessage = function (e) {
    var msg = JSON.parse(e.data);
    if (msg.type === "html") {
      root.innerHTML = msg.html;
    } else if (msg.type === "error") {
      console.warn(msg.code, msg.message);
    }
  };
  ["animationend", "click"].forEach(function (name) {
    root.addEventListener(name, function (e) {
      var el = e.target.closest("[data-on-" + name + "]");
      if (!el || ws.readyState !== WebSocket.OPEN) return;
      ws.send(JSON.stringify({ type: "event", hid: el.getAttribute("data-hid"), event: name }));
    }, true);
  });
})();`
