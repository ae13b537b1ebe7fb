package main

import (
	"github.com/orcana-hub/backoffice/cmd"
)

func main() {
	cmd.Execute()
}
