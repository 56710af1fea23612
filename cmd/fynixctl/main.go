package main

import "fynix/internal/cli"

func main() {
	cli.Execute()
}
