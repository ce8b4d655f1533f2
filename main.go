package main

import "r2-manager/cmd"

func main() {
	cmd.Execute()
}
