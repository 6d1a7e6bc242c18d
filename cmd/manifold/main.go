package main

import "github.com/manifold-dev/manifold/pkg/cli"

func main() {
	cli.Execute()
}
