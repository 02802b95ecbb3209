package main

import (
	"log"
	"os"

	"genuka-bridge/internal/build"
	"genuka-bridge/internal/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "genuka-bridge"
	app.Version = build.Version
	app.Usage = "Genuka auth bridge with configuration management"

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
