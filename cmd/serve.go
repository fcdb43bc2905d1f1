package cmd

import (
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/spf13/cobra"

	"github.com/hankinsohl/fgdb/biz/handler"
	"github.com/hankinsohl/fgdb/biz/router"
	"github.com/hankinsohl/fgdb/pkg/validator"
)

func serveCommand(a *app) *cobra.Command {
	var address string
	var initFirst bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the admin HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			if initFirst {
				if err := svc.Initializer.Run(cmd.Context()); err != nil {
					return err
				}
			}
			if address == "" {
				address = a.cfg.Server.Address
			}

			payload := validator.DefaultPayloadConfig()
			payload.MaxSize = a.cfg.Server.MaxBodySize

			h := server.New(
				server.WithHostPorts(address),
				server.WithMaxRequestBodySize(int(a.cfg.Server.MaxBodySize)),
			)
			router.Register(h, handler.NewCatalogHandler(svc, payload), router.Options{
				AdminToken:  a.cfg.Server.AdminToken,
				MaxBodySize: a.cfg.Server.MaxBodySize,
				CORS:        a.cfg.Server.CORS,
				Gatherer:    a.registry,
			})

			hlog.Infof("fgdb admin API listening on %s", address)
			h.Spin()
			return nil
		},
	}
	cmd.Flags().StringVar(&address, "address", "", "Listen address, overrides server.address")
	cmd.Flags().BoolVar(&initFirst, "init", false, "Initialize environments before serving")
	return cmd
}
