package main

import "store-ops/cmd"

func main() {
	cmd.Execute()
}
