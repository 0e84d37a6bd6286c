package main

import (
	"os"

	"playd/internal/playctl"
)

func main() {
	os.Exit(playctl.Main())
}
