package main

import "github.com/oshokin/analog-timer/cmd/analog-timer/cmd"

func main() {
	cmd.Execute()
}
