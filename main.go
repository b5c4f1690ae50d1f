/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>

*/
// @title           Workorder Gin API
// @version         1.0
// @description     Work order API server for the airport fire brigade operations tool

// @host      localhost:8080
// @BasePath  /api/v1
package main

import "github.com/sciops/workorder-gin/cmd"

func main() {
	cmd.Execute()
}
