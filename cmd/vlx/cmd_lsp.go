package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/dhamidi/verilox/verilog/lsp"
)

func newLSPCmd(a *app) *cobra.Command {
	var tcpAddr, wsAddr string

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Long: `Start the Language Server Protocol server. It talks over stdio unless
--tcp or --websocket names an address to listen on.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tcpAddr != "" && wsAddr != "" {
				return errors.New("--tcp and --websocket are mutually exclusive")
			}
			server := lsp.NewServer(version, a.cfg)
			switch {
			case tcpAddr != "":
				log.Infof("serving LSP on tcp %s", tcpAddr)
				return server.RunTCP(tcpAddr)
			case wsAddr != "":
				log.Infof("serving LSP on websocket %s", wsAddr)
				return server.RunWebSocket(wsAddr)
			}
			return server.RunStdio()
		},
	}

	cmd.Flags().StringVar(&tcpAddr, "tcp", "", "listen for a client on this TCP address")
	cmd.Flags().StringVar(&wsAddr, "websocket", "", "listen for clients on this WebSocket address")

	return cmd
}
