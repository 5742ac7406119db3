package main

import "mango-sync/cmd"

func main() {
	cmd.Execute()
}
