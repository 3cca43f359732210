package main

import (
	"github.com/hexforge/fieldstate/cmd"
)

func main() {
	cmd.Execute()
}
