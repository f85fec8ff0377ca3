// Command save4dream is a financial-literacy game for kids played from the
// terminal.
package main

import "github.com/mesh-intelligence/save4dream/internal/cli"

func main() {
	cli.Execute()
}
