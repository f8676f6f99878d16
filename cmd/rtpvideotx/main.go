package main

import (
	"github.com/mengelbart/rtpvideotx/cmdmain"
	_ "github.com/mengelbart/rtpvideotx/subcmd"
)

func main() {
	cmdmain.Main()
}
