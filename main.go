package main

import (
	"os"

	"github.com/thenoetrevino/hireboard/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
