package main

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/secureworks/decay"
	"github.com/secureworks/decay/internal/remote"
)

// report is what decayfmt reads: the sender's failure type is unknown,
// so outer failures decode into the generic remote.Error.
type report = decay.Report[*remote.Error]

// source is one named input stream.
type source struct {
	name string
	r    io.Reader
}

// openSources opens the named files, or stdin when there are none or a
// name is "-". The returned function closes the opened files.
func openSources(stdin io.Reader, names []string) ([]source, func(), error) {
	if len(names) == 0 {
		names = []string{"-"}
	}

	var files []*os.File
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	sources := make([]source, 0, len(names))
	for _, name := range names {
		if name == "-" {
			sources = append(sources, source{name: "stdin", r: stdin})
			continue
		}
		f, err := os.Open(name)
		if err != nil {
			closeAll()
			return nil, nil, decay.Rot[error]("opening input")(err)
		}
		files = append(files, f)
		sources = append(sources, source{name: name, r: f})
	}
	return sources, closeAll, nil
}

// readReports decodes a stream of reports in the given format and calls
// fn with each, stopping at the end of the stream or at the first error.
// JSON streams hold one report per value (newline-delimited logs work);
// msgpack streams hold consecutive arrays.
func readReports(src source, format string, fn func(report) error) *decay.Decay[error] {
	var decode func(*report) error
	switch format {
	case formatJSON:
		dec := json.NewDecoder(src.r)
		decode = func(r *report) error { return dec.Decode(r) }
	case formatMsgpack:
		dec := msgpack.NewDecoder(src.r)
		decode = func(r *report) error { return dec.Decode(r) }
	default:
		return decay.Newf[error]("unknown format %q", format)
	}

	for n := 1; ; n++ {
		var r report
		if err := decode(&r); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return decay.Rot[error]("decoding report %d from %s", n, src.name)(err)
		}
		slog.Debug("decoded report", "source", src.name, "index", n, "items", len(r))
		if err := fn(r); err != nil {
			return decay.Rot[error]("handling report %d from %s", n, src.name)(err)
		}
	}
}
