package main

import "github.com/oshokin/signal-hold/cmd/signal-monitor/cmd"

func main() {
	cmd.Execute()
}
