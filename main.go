package main

import "api-mirror/cmd"

func main() {
	cmd.Execute()
}
