package main

import "github.com/KaramelBytes/curvefit-cli/cmd"

func main() {
	cmd.Execute()
}
