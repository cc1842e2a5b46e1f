package main

import "github.com/andrescamacho/recipe-resolver/internal/adapters/cli"

func main() {
	cli.Execute()
}
