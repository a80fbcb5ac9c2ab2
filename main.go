package main

import "intake-reconciler/cmd"

func main() {
	cmd.Execute()
}
