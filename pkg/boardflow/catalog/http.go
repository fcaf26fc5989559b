package catalog

import (
	"fmt"

	"github.com/boardflow/boardflow/pkg/boardflow"
)

// HTTPRequest performs an outbound HTTP call through the host's
// capability gate. It is the only catalog node that declares a
// permission; drop "http" from a copy of its definition and the gate
// denies every call it makes.
type HTTPRequest struct{}

// Define returns the http_request node definition.
func (HTTPRequest) Define() boardflow.Definition {
	return boardflow.Definition{
		Name:         "http_request",
		FriendlyName: "HTTP Request",
		Description:  "Performs an HTTP request against a URL",
		Category:     "network",
		Permissions:  []string{boardflow.CapabilityHTTP},
		ErrorPin:     "exec_error",
		Pins: []boardflow.Pin{
			boardflow.ExecPin("exec_in", boardflow.Input),
			boardflow.InputPin("method", boardflow.TypeString).
				WithDefault("GET").
				WithLabel("Method", "HTTP method"),
			boardflow.InputPin("url", boardflow.TypeString).
				WithLabel("URL", "Request URL"),
			boardflow.InputPin("body", boardflow.TypeBytes).
				WithDefault([]byte(nil)).
				WithLabel("Body", "Request body"),
			boardflow.ExecPin("exec_out", boardflow.Output).
				WithLabel("Done", "Fired after a completed request"),
			boardflow.ExecPin("exec_error", boardflow.Output).
				WithLabel("Error", "Fired when the request fails or is denied"),
			boardflow.OutputPin("status", boardflow.TypeInteger).
				WithLabel("Status", "HTTP status code"),
			boardflow.OutputPin("response", boardflow.TypeBytes).
				WithLabel("Response", "Response body"),
		},
	}
}

// Run performs the request. A gate denial or transport error fails the
// activation, which routes execution to exec_error; a completed request
// succeeds regardless of status code, with the code on the status pin.
func (HTTPRequest) Run(ctx *boardflow.ExecutionContext) {
	method, err := ctx.InputString("method")
	if err != nil {
		ctx.Fail(err.Error())
		return
	}
	url, err := ctx.InputString("url")
	if err != nil {
		ctx.Fail(err.Error())
		return
	}
	body, err := ctx.InputBytes("body")
	if err != nil {
		ctx.Fail(err.Error())
		return
	}

	resp, err := ctx.HTTPRequest(method, url, nil, body)
	if err != nil {
		ctx.Fail(fmt.Sprintf("%s %s: %v", method, url, err))
		return
	}

	if err := ctx.SetOutput("status", int64(resp.Status)); err != nil {
		ctx.Fail(err.Error())
		return
	}
	if err := ctx.SetOutput("response", resp.Body); err != nil {
		ctx.Fail(err.Error())
		return
	}
	ctx.Success()
}
