package main

import "beccabot/cmd"

func main() {
	cmd.Execute()
}
