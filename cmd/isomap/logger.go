package main

import (
	"io"
	"log"
	"os"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/natefinch/lumberjack"
	"github.com/shirou/gopsutil/load"
	"github.com/shirou/gopsutil/mem"
)

// setupLogging mirrors WebChunk main.go's own log.SetOutput call: a rotating
// file plus stdout, so a render started from a terminal still shows progress
// there while the file keeps a durable record.
func setupLogging(c Config) *lumberjack.Logger {
	lj := &lumberjack.Logger{
		Filename: c.LogsLocation,
		MaxSize:  10,
		Compress: true,
	}
	log.SetOutput(io.MultiWriter(lj, os.Stdout))
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	return lj
}

// logResourceUsage prints one line of memory/load stats, the same fields
// main.go's periodic status logger reads via gopsutil.
func logResourceUsage(prefix string) {
	virtmem, err := mem.VirtualMemory()
	if err != nil {
		return
	}
	avg, err := load.Avg()
	if err != nil {
		return
	}
	log.Printf("%s mem %s/%s (%.1f%%), load %.2f %.2f %.2f",
		prefix,
		humanize.Bytes(virtmem.Used), humanize.Bytes(virtmem.Total), virtmem.UsedPercent,
		avg.Load1, avg.Load5, avg.Load15)
}

// watchResourceUsage logs resource stats every interval until stop is
// closed, for long tile-pyramid renders that can run for hours.
func watchResourceUsage(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			logResourceUsage("progress:")
		case <-stop:
			return
		}
	}
}
