package main

import "github.com/opensplit/feolattack/cmd/feolattack/cmd"

func main() {
	cmd.Execute()
}
