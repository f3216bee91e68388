package main

import "otsshare/cmd/client/cmd"

func main() {
	cmd.Execute()
}
