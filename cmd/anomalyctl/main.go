package main

import (
	"os"

	"anomalyd/internal/anomctl"
)

func main() {
	os.Exit(anomctl.Main())
}
