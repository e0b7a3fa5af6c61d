package main

import "github.com/gosuda/cadence/cmd/cadence/commands"

func main() {
	commands.Execute()
}
