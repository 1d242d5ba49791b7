package main

import "github.com/YunChenqwq/MiditoBytebeat/cmd"

func main() {
	cmd.Execute()
}
