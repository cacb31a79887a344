package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/model"
	"github.com/jessevdk/go-flags"
)

type resyncCommand struct {
	From uint64 `long:"from" description:"first height to re-index" required:"true"`
	Mode string `long:"mode" description:"what to delete before rewinding" choice:"clear-all" choice:"clear-transfers" choice:"from-only" default:"from-only"`

	opts *globalOptions
	out  io.Writer
}

func newResyncCommand(opts *globalOptions, out io.Writer) *resyncCommand {
	return &resyncCommand{opts: opts, out: out}
}

func (x *resyncCommand) Register(parser *flags.Parser) error {
	_, err := parser.AddCommand(
		"resync",
		"Rewind the indexer",
		"Queue an administrative resync; the indexer applies it between "+
			"blocks and reprocesses history from --from",
		x,
	)
	return err
}

func (x *resyncCommand) Execute(_ []string) error {
	if x.From == 0 {
		return errors.New("--from must be at least 1")
	}
	client, err := newAPIClient(x.opts)
	if err != nil {
		return err
	}

	req := model.ResyncRequest{FromHeight: x.From, Mode: model.ResyncMode(x.Mode)}
	var accepted model.ResyncRequest
	if err := client.do(context.Background(), http.MethodPost, "/v1/admin/resync", req, &accepted); err != nil {
		return err
	}
	return printJSON(x.out, accepted)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
