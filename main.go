package main

import "github.com/gaurav-prasanna/devmark/cmd"

func main() {
	cmd.Execute()
}
