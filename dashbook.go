// main
package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/hujun-open/dashbook/cli"
	"github.com/hujun-open/dashbook/conf"
	"github.com/hujun-open/dashbook/mainwindow"
)

func main() {
	if mainwindow.VERSION != "" {
		logfpath := filepath.Join(conf.ConfDir(), "dashbook.log")
		os.MkdirAll(conf.ConfDir(), 0755)
		f, err := os.OpenFile(logfpath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("failed to open log file")
		} else {
			log.SetOutput(f)
			defer f.Close()
		}
	}
	log.SetFlags(log.Ltime | log.Lshortfile)
	cli.Execute()
}
