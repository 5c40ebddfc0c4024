package main

import (
	"github.com/justinhuang159/Grubble/internal/app"
	"github.com/justinhuang159/Grubble/internal/config"
)

func main() {
	app.Go(config.Load())
}
