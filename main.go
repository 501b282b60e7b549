package main

import "scene-editor/cmd"

func main() {
	cmd.Execute()
}
