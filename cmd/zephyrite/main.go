/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/zephyrite-db/zephyrite/cmd/zephyrite/cmd"

func main() {
	cmd.Execute()
}
