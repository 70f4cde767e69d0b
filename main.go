package main

import "github.com/misterram/mediacore/cmd"

func main() {
	cmd.Execute()
}
