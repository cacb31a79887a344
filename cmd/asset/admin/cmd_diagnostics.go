package main

import (
	"context"
	"io"
	"net/http"

	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/controller"
	"github.com/jessevdk/go-flags"
)

type diagnosticsCommand struct {
	opts *globalOptions
	out  io.Writer
}

func newDiagnosticsCommand(opts *globalOptions, out io.Writer) *diagnosticsCommand {
	return &diagnosticsCommand{opts: opts, out: out}
}

func (x *diagnosticsCommand) Register(parser *flags.Parser) error {
	_, err := parser.AddCommand(
		"diagnostics",
		"Show indexer state",
		"Print the sync cursor, controller state, node lag and registry counts",
		x,
	)
	return err
}

func (x *diagnosticsCommand) Execute(_ []string) error {
	client, err := newAPIClient(x.opts)
	if err != nil {
		return err
	}

	var diag controller.Diagnostics
	if err := client.do(context.Background(), http.MethodGet, "/v1/admin/diagnostics", nil, &diag); err != nil {
		return err
	}
	return printJSON(x.out, diag)
}
