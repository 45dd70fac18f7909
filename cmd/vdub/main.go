package main

import "github.com/mkravets/vdub/internal/cli"

func main() {
	cli.Main()
}
