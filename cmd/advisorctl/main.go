package main

import "github.com/agrifield/advisor/internal/cli"

func main() {
	cli.Execute()
}
