package main

import (
	"os"

	"github.com/arthur-debert/macprefs/cmd/macprefs/commands"
)

func main() {
	os.Exit(commands.Execute())
}
