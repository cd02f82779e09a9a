package main

import "github.com/jhoicas/almacen-api/cmd/almacenctl/commands"

func main() {
	commands.Execute()
}
