package main

import (
	_ "go.uber.org/automaxprocs"

	"github.com/kiosk404/animus/internal/animusd"
)

func main() {
	animusd.NewApp("animusd").Run()
}
