// cmd/foldlab/main.go
package main

import (
	"foldlab/internal/appshell"
	"foldlab/internal/cli"
)

func main() {
	appshell.Main(cli.Run)
}
