package main

import "github.com/andrescamacho/takeoff-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
