package main

import "roster-manager/cmd"

func main() {
	cmd.Execute()
}
