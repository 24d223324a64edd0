package main

import cmd "github.com/rohmanhakim/nps-sites/internal/cli"

func main() {
	cmd.Execute()
}
