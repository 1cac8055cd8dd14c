// Circuit Cube CLI - scan for, inspect, and drive Tenka Circuit Cubes.
package main

import (
	"github.com/simon-code-git/circuitcube/internal/cli"
)

func main() {
	cli.Execute()
}
