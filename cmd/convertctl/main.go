package main

import "convertkit.dev/internal/cli"

func main() {
	cli.Execute()
}
