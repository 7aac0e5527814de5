package main

import "github.com/maxvaer/netbuster/cmd"

func main() {
	cmd.Execute()
}
