package main

import "github.com/empmanager/personnel-management/cmd"

func main() {
	cmd.Execute()
}
