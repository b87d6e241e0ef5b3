// Package main starts the JSS Edge HTTP service
package main

import (
	"log"

	"github.com/jssgo/jss-edge/internal/application/startup"
)

func main() {
	if err := startup.Initialize(); err != nil {
		log.Fatalf("Startup failed: %v", err)
	}
}
