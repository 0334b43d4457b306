package main

import "github.com/heathj/xmlhighlight/cmd"

func main() {
	cmd.Execute()
}
