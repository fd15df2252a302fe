// Command unitflow inspects units and channel files and runs a demo block
// diagram.
package main

import (
	"log"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/unitflow/config"
	"github.com/sarchlab/unitflow/id"
	"github.com/sarchlab/unitflow/unitflow/cmd"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal(err)
	}

	id.Use(cfg.IDMode)

	atexit.Exit(cmd.Execute(cfg))
}
