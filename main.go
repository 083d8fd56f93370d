package main

import "github.com/ykarmi/kinderbell/cmd"

func main() {
	cmd.Execute()
}
