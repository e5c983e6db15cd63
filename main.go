package main

import "github.com/dbt2ddl/dbt2ddl/cmd"

func main() {
	cmd.Execute()
}
