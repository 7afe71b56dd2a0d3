package main

import "mapmyfirm/cmd/mapmyfirm-cli/cmd"

func main() {
	cmd.Execute()
}
