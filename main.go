package main

import "flowlancer.com/flowlancer/cmd"

func main() {
	cmd.Execute()
}
