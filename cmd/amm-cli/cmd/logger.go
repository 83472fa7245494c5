// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"io"
	"os"
	"path/filepath"

	"github.com/ava-labs/avalanchego/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"
)

// newLogger writes to stderr at the display level and to a rotating file in
// the log directory at the log level. Stop the logger to close the file.
func newLogger(name string, config logging.Config) logging.Logger {
	var display io.WriteCloser = os.Stderr
	if config.DisableWriterDisplaying {
		display = nopCloser{io.Discard}
	}
	console := logging.NewWrappedCore(config.DisplayLevel, display, config.LogFormat.ConsoleEncoder())
	console.WriterDisabled = config.DisableWriterDisplaying

	file := logging.NewWrappedCore(config.LogLevel, &lumberjack.Logger{
		Filename:   filepath.Join(config.Directory, name+".log"),
		MaxSize:    config.MaxSize,
		MaxAge:     config.MaxAge,
		MaxBackups: config.MaxFiles,
		Compress:   config.Compress,
	}, config.LogFormat.FileEncoder())

	return logging.NewLogger(config.LogFormat.WrapPrefix(config.MsgPrefix), console, file)
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}
