package main

import "github.com/kamal-hamza/docchat-cli/cmd"

func main() {
	cmd.Execute()
}
