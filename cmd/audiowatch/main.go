/*
DESCRIPTION
  Audiowatch is a program that watches a directory for newly written
  WAVE or AIFF files and logs a summary of each as it appears.

AUTHORS
  David Sutton <davidsutton@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package audiowatch is a bare bones program that logs a summary of
// every WAVE or AIFF file dropped into a watched directory.
package main

import (
	"flag"
	"path/filepath"
	"strings"
	"time"

	"github.com/ausocean/utils/logging"
	"github.com/fsnotify/fsnotify"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/audiofile"
)

// Logging related constants.
const (
	logPath      = "/var/log/audiowatch/audiowatch.log"
	logMaxSize   = 100 // MB
	logMaxBackup = 10
	logMaxAge    = 28 // days
	logVerbosity = logging.Debug
	logSuppress  = true
)

// settleDelay is how long audiowatch waits after a write event before
// opening a file, so a writer still appending to it doesn't get read
// mid-write.
const settleDelay = 500 * time.Millisecond

func main() {
	dirPtr := flag.String("dir", "", "Directory to watch for new audio files.")
	flag.Parse()

	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	l := logging.New(logVerbosity, fileLog, logSuppress)

	if *dirPtr == "" {
		l.Fatal("no -dir supplied")
		return
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		l.Fatal("could not create watcher", "error", err.Error())
		return
	}
	defer watcher.Close()

	if err := watcher.Add(*dirPtr); err != nil {
		l.Fatal("could not watch directory", "dir", *dirPtr, "error", err.Error())
		return
	}

	l.Info("watching directory", "dir", *dirPtr)
	watch(watcher, l)
}

// watch services fsnotify events until the watcher's channels close,
// reporting a summary of every newly written WAVE/AIFF file.
func watch(watcher *fsnotify.Watcher, l logging.Logger) {
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !isAudioFile(ev.Name) {
				continue
			}
			time.Sleep(settleDelay)
			report(ev.Name, l)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			l.Error("watcher error", "error", err.Error())
		}
	}
}

// isAudioFile reports whether name carries a ".wav", ".aif" or
// ".aiff" extension, case-insensitively.
func isAudioFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".wav", ".aif", ".aiff":
		return true
	default:
		return false
	}
}

// report loads path into an AudioObject and logs its summary, or logs
// the load failure.
func report(path string, l logging.Logger) {
	a := audiofile.New[int32]()
	a.SetLogger(l)
	a.ShouldLogErrorsToConsole(true)
	if !a.Load(path) {
		l.Warning("could not load file", "path", path)
		return
	}
	l.Info("loaded file",
		"path", path,
		"format", a.Format().String(),
		"channels", a.GetNumChannels(),
		"sampleRate", a.GetSampleRate(),
		"bitDepth", a.GetBitDepth(),
		"seconds", a.GetLengthInSeconds(),
	)
}
