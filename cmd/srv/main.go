package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

var server = srv{ctx: context.Background()}

func main() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "Sosyal"
	app.Usage = ""
	app.Commands = []*cli.Command{
		{
			Action:      server.startApi,
			Name:        "api",
			Usage:       "Start the api service",
			Flags:       []cli.Flag{},
			Category:    "Api",
			Description: `The main service, it includes all http apis.`,
		},
		{
			Action:      server.startProxy,
			Name:        "proxy",
			Usage:       "Start the notification proxy service",
			Flags:       []cli.Flag{},
			Category:    "Websocket",
			Description: `Keeps websocket connections with clients and forwards realtime events to them.`,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
