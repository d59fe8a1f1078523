package main

import (
	"os"

	"github.com/abothula/lowpass/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
