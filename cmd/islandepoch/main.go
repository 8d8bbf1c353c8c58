package main

import "github.com/islandepoch/islandepoch-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
