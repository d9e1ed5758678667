package main

import "github.com/shouni/npc-forge-kit/cmd"

func main() {
	cmd.Execute()
}
