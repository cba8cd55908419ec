package main

import "github.com/dmitrymomot/proteus/internal/cli"

func main() {
	cli.Execute()
}
