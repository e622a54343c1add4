package main

import "github.com/oshokin/analog-timer/cmd/timerctl/cmd"

func main() {
	cmd.Execute()
}
