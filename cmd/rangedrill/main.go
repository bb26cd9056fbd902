package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Serve    ServeCmd         `cmd:"" help:"Run the practice server"`
	Practice PracticeCmd      `cmd:"" help:"Start an interactive practice session"`
	Ranges   RangesCmd        `cmd:"" help:"Inspect a range book"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("rangedrill"),
		kong.Description("Preflop range drilling against your own range book"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
