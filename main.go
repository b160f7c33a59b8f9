package main

import "terraform-applyx/cmd"

func main() {
	cmd.Execute()
}
