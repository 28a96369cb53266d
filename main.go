package main

import "github.com/Tiliavir/shifttap/cmd"

func main() {
	cmd.Execute()
}
