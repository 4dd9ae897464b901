package main

import "github.com/Tiliavir/myhours-cli/cmd"

func main() {
	cmd.Execute()
}
